package resonance

// SoulmateScore is w1·Y1 + w2·Y2 + w3·Y3 − w4·Y4 + w5·Y5 + w6·Y6 over observed
// outcomes. It is not bounded to [0, 1].
func (m *Model) SoulmateScore(y Outcome) float64 {
	w := m.weights.Outcome
	return w.Longevity*y.Longevity +
		w.Satisfaction*y.Satisfaction +
		w.Growth*y.Growth -
		w.ConflictToxicity*y.ConflictToxicity +
		w.RepairEfficiency*y.RepairEfficiency +
		w.TrajectoryAlignment*y.TrajectoryAlignment
}

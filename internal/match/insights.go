package match

// #region messages
const (
	msgStrengthAttachment      = "Strong emotional connection and security"
	msgStrengthConflict        = "Excellent communication and conflict resolution"
	msgStrengthSocial          = "Compatible social styles and energy levels"
	msgStrengthValues          = "Shared core values and life goals"
	msgStrengthComplementarity = "Complementary traits create balance"
	msgStrengthFallback        = "Potential for growth and learning together"

	msgChallengeAttachment = "Different attachment styles may require understanding"
	msgChallengeConflict   = "Conflict resolution styles may need alignment"
	msgChallengeSocial     = "Different social needs may require compromise"
	msgChallengeValues     = "Core values differences may need discussion"
	msgChallengeDifferent  = "Very different personalities may require extra effort"
	msgChallengeSimilar    = "Very similar personalities may lack excitement"
	msgChallengeFallback   = "Minor adjustments may be needed as you grow together"

	msgInsightBoth           = "You share core similarities while bringing complementary strengths"
	msgInsightSimilar        = "You're very similar - focus on maintaining individual growth"
	msgInsightBalance        = "Your differences create balance - embrace your unique strengths"
	msgInsightFoundation     = "Strong emotional foundation supports long-term connection"
	msgInsightSocialPlanning = "Different social needs - plan time together and apart"
	msgInsightFallback       = "Every connection is unique - keep talking about what matters to you both"
)

// #endregion messages

// #region strengths
func strengths(c components) []string {
	var out []string
	if c.attachment >= 0.8 {
		out = append(out, msgStrengthAttachment)
	}
	if c.conflict >= 0.8 {
		out = append(out, msgStrengthConflict)
	}
	if c.social >= 0.8 {
		out = append(out, msgStrengthSocial)
	}
	if c.values >= 0.8 {
		out = append(out, msgStrengthValues)
	}
	if c.complementarity >= 0.7 {
		out = append(out, msgStrengthComplementarity)
	}
	if len(out) == 0 {
		out = append(out, msgStrengthFallback)
	}
	return out
}

// #endregion strengths

// #region challenges
func challenges(c components) []string {
	var out []string
	if c.attachment < 0.6 {
		out = append(out, msgChallengeAttachment)
	}
	if c.conflict < 0.6 {
		out = append(out, msgChallengeConflict)
	}
	if c.social < 0.6 {
		out = append(out, msgChallengeSocial)
	}
	if c.values < 0.6 {
		out = append(out, msgChallengeValues)
	}
	if c.similarity < 0.4 {
		out = append(out, msgChallengeDifferent)
	} else if c.similarity > 0.9 {
		out = append(out, msgChallengeSimilar)
	}
	if len(out) == 0 {
		out = append(out, msgChallengeFallback)
	}
	return out
}

// #endregion challenges

// #region insights
func insights(c components) []string {
	var out []string
	switch {
	case c.similarity > 0.7 && c.complementarity > 0.6:
		out = append(out, msgInsightBoth)
	case c.similarity > 0.7:
		out = append(out, msgInsightSimilar)
	case c.complementarity > 0.7:
		out = append(out, msgInsightBalance)
	}
	if c.attachment >= 0.8 {
		out = append(out, msgInsightFoundation)
	}
	if c.socialDiff > socialModerate {
		out = append(out, msgInsightSocialPlanning)
	}
	if len(out) == 0 {
		out = append(out, msgInsightFallback)
	}
	return out
}

// #endregion insights

package scoring

import "fmt"

// buildPrompt embeds the caption and description verbatim into the strict
// relevance-rating instruction given to the model.
func buildPrompt(caption, description string) string {
	return fmt.Sprintf(`You are a civic issue validator.
Your task is to strictly rate the civic relevance of the report (0-100).
Evaluate BOTH the AI-generated image caption and the user-provided description.
Check if they are consistent with each other and clearly describe a civic infrastructure or public issue.

IMAGE CAPTION: "%s"
USER DESCRIPTION: "%s"

SCORING RULES:
- HIGH RELEVANCE (70-100): Directly related to civic/public issues such as
road damage, potholes, waterlogging, sewage/drainage problems, street lighting,
garbage/waste management, traffic signals, broken sidewalks, public transport,
government facilities, electricity/power supply, or community infrastructure.
Both caption and description should clearly align on a civic issue.
- MEDIUM RELEVANCE (40-69): Vague or partially relevant civic issues.
Example: Caption shows a road but description is unclear; description mentions
"problem in colony" but not specific; mismatched caption/description but still
possibly civic-related. Needs clarification.
- LOW RELEVANCE (0-39): Not related to civic/public issues. Includes:
personal complaints, private property, selfies, pets, family photos,
festivals, shops/ads, or anything unrelated to infrastructure/public utilities.
Also applies when caption and description contradict each other
(e.g., caption about nature but description about electricity).
STRICTNESS RULES:
- If description is too short, vague, or generic (e.g., "please fix this", "bad condition") -> score low.
- If caption and description do not match -> score low.
- Do NOT assume relevance if it's unclear. Prefer lowering score.

Respond EXACTLY in this format:
<number>

Where <number> is an integer from 0 to 100, zero-padded to 3 digits (e.g., 007, 085).`,
		caption, description)
}

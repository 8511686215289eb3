package classifier

import "fmt"

const moderationPromptTemplate = `You are the content moderator for "Carp Connect", a community site for Carp fans.
Judge whether the following content is appropriate.

Examples of inappropriate content:
- violent expressions
- discriminatory expressions
- sexual expressions
- harassment or defamation
- spam
- leaking of personal information

Content:
"""
%s
"""

Answer with a JSON object in exactly this format:
{
  "result": "approved" or "rejected",
  "reason": "a short explanation of the judgement",
  "score": a number between 0.0 and 1.0 (1.0 means most appropriate)
}`

// BuildModerationPrompt renders the submitted content into the instruction
// text sent to the classifier. The content is embedded verbatim, untruncated.
func BuildModerationPrompt(content string) string {
	return fmt.Sprintf(moderationPromptTemplate, content)
}

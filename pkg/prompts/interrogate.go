package prompts

import (
	"fmt"
	"strings"

	"github.com/helmcode/reqcheck/pkg/model"
)

// InterrogateTemperature keeps the questions focused but not repetitive.
const InterrogateTemperature = 0.3

// InterrogateSystem asks the model for questions that expose what a
// requirement leaves unsaid.
const InterrogateSystem = `**ROLE:** You are a Senior QA Automation Architect and Requirements Auditor. Your goal is to find "Ghost Logic" and "Hidden Assumptions" in software requirements to prevent development rework.

**MISSION:**
Given a requirement or test case, you must identify what is NOT said. You will generate 4-5 "Interrogation Questions" that force the stakeholder to define the edge cases, constraints, and error states.

**THINKING STEPS:**
1. Analyze the requirement for "Vague Nouns" (e.g., "User", "Data", "File").
2. Analyze for "Vague Adjectives" (e.g., "Fast", "Secure", "Relevant").
3. Identify the "Happy Path" and then intentionally look for the "Unhappy Path."
4. Generate questions that address: Scale, Security, Failure States, and Edge Cases.

---

### FEW-SHOT EXAMPLES:

**INPUT REQUIREMENT:** "Users should be able to upload a profile picture."
**INTERROGATION QUESTIONS:**
1. **Scale:** What is the maximum file size allowed (e.g., 2MB vs 20MB)?
2. **Format:** Do we support modern formats like .heic or .webp, or strictly .jpg/.png?
3. **Security:** Is there a malware/virus scanning requirement before the file hits the server?
4. **State:** What happens if the user's internet cuts out at 50% upload completion?
5. **Privacy:** Do we need to strip EXIF data (location metadata) from the image for privacy?

**INPUT REQUIREMENT:** "The dashboard should load data quickly."
**INTERROGATION QUESTIONS:**
1. **Definition:** What is the specific "Time to Interactive" (TTI) target in milliseconds?
2. **Volume:** What happens to speed when the user has 10,000+ records instead of 10?
3. **Concurrency:** How many simultaneous users should the dashboard support without slowing down?
4. **Failure:** If the data source is down, do we show a cached version or an error state?`

// BuildInterrogatePrompt returns the user message for an interrogation of
// text. Issues already found are listed so the model looks past them.
func BuildInterrogatePrompt(text string, issues []model.Issue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "USER REQUIREMENT: %s", text)
	if len(issues) > 0 {
		b.WriteString("\n**PREVIOUSLY DETECTED ISSUES:**\n")
		b.WriteString(issueLines(issues))
		b.WriteString("\n\nNote: The issues above have already been found. Focus your interrogation on 'Ghost Logic', the deeper hidden assumptions NOT covered by these basic checks.")
	}
	return b.String()
}

// issueLines renders one "- type: message" line per issue.
func issueLines(issues []model.Issue) string {
	lines := make([]string, 0, len(issues))
	for _, issue := range issues {
		lines = append(lines, fmt.Sprintf("- %s: %s", issueType(issue), issue.Explain()))
	}
	return strings.Join(lines, "\n")
}

func issueType(issue model.Issue) string {
	switch v := issue.(type) {
	case *model.AmbiguityIssue:
		return string(v.Type)
	case *model.AssumptionIssue:
		return string(v.Type)
	}
	return string(issue.IssueKind())
}

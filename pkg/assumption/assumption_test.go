package assumption

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/reqcheck/pkg/catalog"
	"github.com/helmcode/reqcheck/pkg/model"
	"github.com/helmcode/reqcheck/pkg/nlp"
)

func detect(t *testing.T, text string) []*model.AssumptionIssue {
	t.Helper()
	issues, err := DetectText(nlp.NewBasicAnnotator(), text)
	require.NoError(t, err)
	return issues
}

func descriptions(issues []*model.AssumptionIssue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.AssumptionDescription
	}
	return out
}

func TestDetect_LoginScenario(t *testing.T) {
	text := "User logs in with valid credentials and accesses dashboard"
	issues := detect(t, text)

	require.Len(t, issues, 4)
	assert.Equal(t, []string{
		catalog.DescriptionOf(catalog.UserExists),
		catalog.DescriptionOf(catalog.UserLoggedIn),
		catalog.DescriptionOf(catalog.PermissionsGranted),
		catalog.DescriptionOf(catalog.UserLoggedIn),
	}, descriptions(issues))

	assert.Equal(t, "log in", issues[0].MatchedText)
	assert.Equal(t, catalog.CategoryData, issues[0].Category)
	assert.Equal(t, "Action 'log in' implies assumption", issues[0].Message)
	assert.Equal(t, "access", issues[1].MatchedText)
	assert.Equal(t, "dashboard", issues[3].MatchedText)

	// "credentials" makes credentials_exist explicit
	for _, issue := range issues {
		assert.NotEqual(t, catalog.DescriptionOf(catalog.CredentialsExist), issue.AssumptionDescription)
	}

	assert.InDelta(t, 82.4, Score(issues, text), 1e-9)
}

func TestDetect_ValidLoginIsNotExplicit(t *testing.T) {
	issues := detect(t, "Perform a valid login")
	require.Len(t, issues, 2)
	assert.Equal(t, catalog.DescriptionOf(catalog.UserExists), issues[0].AssumptionDescription)
	assert.Equal(t, catalog.DescriptionOf(catalog.CredentialsExist), issues[1].AssumptionDescription)
}

func TestDetect_ExplicitStateSuppressed(t *testing.T) {
	issues := detect(t, "Given the user is logged in, open the report")

	require.Len(t, issues, 2)
	assert.Equal(t, []string{
		catalog.DescriptionOf(catalog.DataExists),
		catalog.DescriptionOf(catalog.PermissionsGranted),
	}, descriptions(issues))
	assert.Equal(t, "report", issues[0].MatchedText)
}

func TestDetect_EnvironmentAssumption(t *testing.T) {
	issues := detect(t, "Click the submit button")

	require.Len(t, issues, 3)
	assert.Equal(t, model.ActionAssumption, issues[0].Type)
	assert.Equal(t, model.ActionAssumption, issues[1].Type)

	env := issues[2]
	assert.Equal(t, model.EnvironmentAssumption, env.Type)
	assert.Equal(t, catalog.CategoryEnvironment, env.Category)
	assert.Equal(t, "UI interaction", env.MatchedText)
	assert.Equal(t, "Browser, device, or platform is specified", env.AssumptionDescription)
}

func TestDetect_EnvironmentNamed(t *testing.T) {
	for _, issue := range detect(t, "Click the submit button in Chrome") {
		assert.NotEqual(t, model.EnvironmentAssumption, issue.Type)
	}
}

func TestDetect_UserContextAssumption(t *testing.T) {
	issues := detect(t, "Open the settings page")

	require.Len(t, issues, 3)
	last := issues[2]
	assert.Equal(t, model.ContextAssumption, last.Type)
	assert.Equal(t, catalog.CategoryState, last.Category)
	assert.Equal(t, "User-specific action", last.MatchedText)
}

func TestDetect_DataContextAssumption(t *testing.T) {
	issues := detect(t, "Export results as CSV")

	require.Len(t, issues, 3)
	last := issues[2]
	assert.Equal(t, model.ContextAssumption, last.Type)
	assert.Equal(t, catalog.CategoryData, last.Category)
	assert.Equal(t, "Data operation", last.MatchedText)
	assert.Equal(t, "Required data exists in the system", last.AssumptionDescription)

	none := detect(t, "Export the customer data as CSV")
	for _, issue := range none {
		assert.NotEqual(t, model.ContextAssumption, issue.Type)
	}
}

func TestDetect_SubstringMatching(t *testing.T) {
	issues := detect(t, "Show the latest news")
	require.Len(t, issues, 2)
	assert.Equal(t, "test", issues[0].MatchedText)
}

func TestDetect_PastFormsNotNormalized(t *testing.T) {
	for _, issue := range detect(t, "The page was logged in already") {
		assert.NotEqual(t, "log in", issue.MatchedText)
	}
}

func TestDetect_NoIssues(t *testing.T) {
	assert.Empty(t, detect(t, "Response time is under 300 ms"))
}

func TestScore_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Score(nil, "anything"))
	assert.Equal(t, 0.0, Score([]*model.AssumptionIssue{}, ""))
}

func TestScore_UnknownCategory(t *testing.T) {
	issues := []*model.AssumptionIssue{
		model.NewAssumptionIssue(model.ActionAssumption, catalog.CategoryUnknown, "x", "", ""),
	}
	// (10 + 3) * 1.0 + 3
	assert.InDelta(t, 16.0, Score(issues, ""), 1e-9)
}

func TestScore_LongText(t *testing.T) {
	issues := []*model.AssumptionIssue{
		model.NewAssumptionIssue(model.ContextAssumption, catalog.CategoryData, "x", "", ""),
	}
	// (12 + 3) * 1.0 + 150/120
	text := strings.Repeat("word ", 120)
	assert.InDelta(t, 16.25, Score(issues, text), 1e-9)
}

func TestScore_MonotonicInDuplicates(t *testing.T) {
	texts := []string{"", "tiny", strings.Repeat("word ", 20), strings.Repeat("word ", 200)}
	cats := []catalog.Category{
		catalog.CategoryEnvironment, catalog.CategoryData, catalog.CategoryState, catalog.CategoryUnknown,
	}

	for _, text := range texts {
		for _, cat := range cats {
			var issues []*model.AssumptionIssue
			prev := 0.0
			for n := 0; n < 10; n++ {
				issues = append(issues, model.NewAssumptionIssue(model.ActionAssumption, cat, "x", "", ""))
				got := Score(issues, text)
				assert.GreaterOrEqual(t, got, prev, "category %s, %d issues", cat, n+1)
				prev = got
			}
		}
	}
}

func TestScore_Bounded(t *testing.T) {
	var issues []*model.AssumptionIssue
	for i := 0; i < 100; i++ {
		issues = append(issues,
			model.NewAssumptionIssue(model.ActionAssumption, catalog.CategoryEnvironment, "x", "", ""),
			model.NewAssumptionIssue(model.EnvironmentAssumption, catalog.CategoryState, "x", "", ""),
			model.NewAssumptionIssue(model.ContextAssumption, catalog.CategoryData, "x", "", ""),
		)
	}
	got := Score(issues, "a")
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 100.0)
}

func TestInflectionText(t *testing.T) {
	doc, err := nlp.NewBasicAnnotator().Annotate("User logs in after he logged out")
	require.NoError(t, err)
	assert.Equal(t, "user log in after he logged out", inflectionText(doc))
}

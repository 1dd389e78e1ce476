package suggestions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/reqcheck/pkg/catalog"
	"github.com/helmcode/reqcheck/pkg/model"
)

func amb(typ model.AmbiguityType, text string) *model.AmbiguityIssue {
	return model.NewAmbiguityIssue(typ, text, "")
}

func asm(cat catalog.Category, text, description string) *model.AssumptionIssue {
	return model.NewAssumptionIssue(model.ActionAssumption, cat, text, "", description)
}

func TestQuestion_Ambiguity(t *testing.T) {
	tests := []struct {
		name  string
		issue *model.AmbiguityIssue
		want  string
	}{
		{"exact term", amb(model.SubjectiveTerm, "fast"), "What is the acceptable response time in seconds?"},
		{"case folded", amb(model.WeakModality, "Should"), "Is this a mandatory requirement or optional?"},
		{"phrase", amb(model.UndefinedReference, "the system"), "Which specific system or subsystem is being referenced?"},
		{"type default", amb(model.NonTestableStatement, "work correctly"), "What specific, measurable criteria define success for this requirement?"},
		{"no template", amb(model.SubjectiveTerm, "Seamless"), "What specific criteria define 'Seamless'?"},
		{"unknown type", amb("Other", "thing"), "What specific criteria define 'thing'?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Question(tt.issue))
		})
	}
}

func TestQuestion_Assumption(t *testing.T) {
	tests := []struct {
		name  string
		issue *model.AssumptionIssue
		want  string
	}{
		{
			"key from description",
			asm(catalog.CategoryData, "login", catalog.DescriptionOf(catalog.UserExists)),
			"What test user accounts should be available?",
		},
		{
			"credentials",
			asm(catalog.CategoryData, "login", catalog.DescriptionOf(catalog.CredentialsExist)),
			"What user credentials should be prepared for testing?",
		},
		{
			"logged in",
			asm(catalog.CategoryState, "open", catalog.DescriptionOf(catalog.UserLoggedIn)),
			"Should the user be pre-authenticated for this test?",
		},
		{
			"admin wins over user",
			asm(catalog.CategoryState, "admin", catalog.DescriptionOf(catalog.AdminRole)),
			"What admin user roles should be available for testing?",
		},
		{
			"matched text against keys",
			model.NewAssumptionIssue(model.EnvironmentAssumption, catalog.CategoryEnvironment,
				"UI interaction", "", "Browser, device, or platform is specified"),
			"Which browser(s), device(s), and operating system(s) should be supported?",
		},
		{
			"no key derived",
			asm(catalog.CategoryData, "submit", catalog.DescriptionOf(catalog.FormFilled)),
			"What test data or records need to be prepared?",
		},
		{
			"derived key missing from category",
			asm(catalog.CategoryData, "x", "User is logged in"),
			"What test data or records need to be prepared?",
		},
		{
			"category default",
			asm(catalog.CategoryEnvironment, "api", catalog.DescriptionOf(catalog.APIAccessConfigured)),
			"What is the target environment (browser, device, OS) for this requirement?",
		},
		{
			"unknown category",
			asm(catalog.CategoryUnknown, "x", "something"),
			"What specific unknown requirements are needed?",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Question(tt.issue))
		})
	}
}

func TestGenerate_DedupPreservesOrder(t *testing.T) {
	issues := []model.Issue{
		amb(model.WeakModality, "should"),
		amb(model.SubjectiveTerm, "fast"),
		amb(model.SubjectiveTerm, "quick"),
		amb(model.WeakModality, "should"),
		asm(catalog.CategoryState, "open", catalog.DescriptionOf(catalog.UserLoggedIn)),
		asm(catalog.CategoryState, "dashboard", catalog.DescriptionOf(catalog.UserLoggedIn)),
	}

	got := Generate(issues)
	assert.Equal(t, []string{
		"Is this a mandatory requirement or optional?",
		"What is the acceptable response time in seconds?",
		"Should the user be pre-authenticated for this test?",
	}, got)
}

func TestGenerate_Empty(t *testing.T) {
	got := Generate(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGenerateGrouped(t *testing.T) {
	issues := model.IssueList{
		amb(model.SubjectiveTerm, "fast"),
		asm(catalog.CategoryData, "login", catalog.DescriptionOf(catalog.UserExists)),
		amb(model.SubjectiveTerm, "fast"),
	}

	g := GenerateGrouped(issues)
	assert.Equal(t, []string{"What is the acceptable response time in seconds?"}, g.Ambiguity)
	assert.Equal(t, []string{"What test user accounts should be available?"}, g.Assumptions)
}

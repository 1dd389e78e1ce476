package suggestions

import (
	"github.com/helmcode/reqcheck/pkg/catalog"
	"github.com/helmcode/reqcheck/pkg/model"
)

// template is a question keyed by a matched term or an assumption key.
type template struct {
	key      string
	question string
}

// templateSet is an ordered list of templates with an optional default.
type templateSet struct {
	entries  []template
	fallback string
}

func (s templateSet) lookup(key string) (string, bool) {
	for _, t := range s.entries {
		if t.key == key {
			return t.question, true
		}
	}
	return "", false
}

var ambiguityTemplates = map[model.AmbiguityType]templateSet{
	model.SubjectiveTerm: {entries: []template{
		{"fast", "What is the acceptable response time in seconds?"},
		{"slow", "What is the maximum acceptable response time in seconds?"},
		{"quick", "What is the acceptable response time in seconds?"},
		{"secure", "What specific security requirements must be met?"},
		{"safe", "What specific security or safety criteria must be satisfied?"},
		{"scalable", "What are the performance requirements for different user loads?"},
		{"optimal", "What are the specific criteria for optimal performance?"},
		{"efficient", "What are the efficiency requirements or thresholds?"},
		{"user-friendly", "What specific usability criteria should be measured?"},
		{"intuitive", "What specific user experience requirements are expected?"},
		{"robust", "What specific reliability or error-handling requirements exist?"},
		{"reliable", "What are the uptime or success rate requirements?"},
		{"stable", "What are the stability requirements or acceptance criteria?"},
		{"flexible", "What specific flexibility or adaptability requirements exist?"},
		{"responsive", "What are the responsiveness requirements in terms of timing?"},
		{"smooth", "What specific performance characteristics define smoothness?"},
		{"proper", "What specific criteria define proper behavior?"},
		{"correct", "What specific acceptance criteria define correctness?"},
		{"appropriate", "What specific requirements define appropriateness?"},
		{"adequate", "What quantitative measures define adequacy?"},
		{"sufficient", "What specific thresholds or requirements define sufficiency?"},
	}},
	model.WeakModality: {entries: []template{
		{"should", "Is this a mandatory requirement or optional?"},
		{"could", "Under what conditions should this behavior occur?"},
		{"might", "When and under what conditions should this occur?"},
		{"may", "What determines when this behavior should occur?"},
		{"can", "What conditions enable this capability?"},
		{"if possible", "What should happen if this is not possible?"},
		{"as needed", "What triggers the need for this behavior?"},
		{"when necessary", "What conditions make this necessary?"},
		{"ideally", "What is the minimum acceptable behavior if ideal is not achieved?"},
		{"preferably", "What is the alternative if preference cannot be satisfied?"},
	}},
	model.UndefinedReference: {entries: []template{
		{"it", "What specific element or component does 'it' refer to?"},
		{"this", "What specific element or component does 'this' refer to?"},
		{"that", "What specific element or component does 'that' refer to?"},
		{"these", "What specific elements or components do 'these' refer to?"},
		{"those", "What specific elements or components do 'those' refer to?"},
		{"the system", "Which specific system or subsystem is being referenced?"},
		{"the component", "Which specific component is being referenced?"},
		{"the application", "Which specific application is being referenced?"},
		{"the user", "What type of user or user role is being referenced?"},
	}},
	model.NonTestableStatement: {
		fallback: "What specific, measurable criteria define success for this requirement?",
	},
}

var assumptionTemplates = map[catalog.Category]templateSet{
	catalog.CategoryEnvironment: {
		entries: []template{
			{"UI interaction", "Which browser(s), device(s), and operating system(s) should be supported?"},
		},
		fallback: "What is the target environment (browser, device, OS) for this requirement?",
	},
	catalog.CategoryData: {
		entries: []template{
			{catalog.UserExists, "What test user accounts should be available?"},
			{catalog.CredentialsExist, "What user credentials should be prepared for testing?"},
			{catalog.FormFilled, "What specific data should be pre-filled in the form?"},
			{catalog.DataEntered, "What test data should be prepared for this scenario?"},
			{catalog.RecordExists, "What test records should exist in the system?"},
			{catalog.DataExists, "What test data should be available for validation?"},
		},
		fallback: "What test data or records need to be prepared?",
	},
	catalog.CategoryState: {
		entries: []template{
			{catalog.UserLoggedIn, "Should the user be pre-authenticated for this test?"},
			{catalog.PermissionsGranted, "What user role and permissions are required?"},
			{catalog.ConditionExists, "What preconditions must be met to trigger this scenario?"},
			{catalog.ErrorTrigger, "How can the error condition be reliably reproduced?"},
			{catalog.FailureCondition, "What conditions will cause this failure scenario?"},
			{catalog.AdminRole, "What admin user roles should be available for testing?"},
			{catalog.ManagerRole, "What manager user roles should be available for testing?"},
			{catalog.UserRole, "What regular user roles should be available for testing?"},
		},
		fallback: "What system state or user context is required?",
	},
}

// descriptionKeys derives an assumption key from an assumption description.
// The first phrase found in the lower-cased description wins.
var descriptionKeys = []struct {
	phrase string
	key    string
}{
	{"user exists", catalog.UserExists},
	{"credentials", catalog.CredentialsExist},
	{"logged in", catalog.UserLoggedIn},
	{"permissions", catalog.PermissionsGranted},
	{"form filled", catalog.FormFilled},
	{"data entered", catalog.DataEntered},
	{"record exists", catalog.RecordExists},
	{"condition exists", catalog.ConditionExists},
	{"data exists", catalog.DataExists},
	{"error", catalog.ErrorTrigger},
	{"failure", catalog.FailureCondition},
	{"admin", catalog.AdminRole},
	{"manager", catalog.ManagerRole},
	{"user", catalog.UserRole},
}

package catalog

import "strings"

// Category classifies what kind of implicit precondition an assumption is.
type Category string

const (
	CategoryEnvironment Category = "Environment"
	CategoryData        Category = "Data"
	CategoryState       Category = "State"
	CategoryUnknown     Category = "Unknown"
)

// Assumption keys referenced by the action table.
const (
	UserExists            = "user_exists"
	CredentialsExist      = "credentials_exist"
	UserLoggedIn          = "user_logged_in"
	PermissionsGranted    = "permissions_granted"
	FormFilled            = "form_filled"
	DataEntered           = "data_entered"
	RecordExists          = "record_exists"
	ConditionExists       = "condition_exists"
	DataExists            = "data_exists"
	ErrorTrigger          = "error_trigger"
	FailureCondition      = "failure_condition"
	AdminRole             = "admin_role"
	ManagerRole           = "manager_role"
	UserRole              = "user_role"
	FileExists            = "file_exists"
	RecipientExists       = "recipient_exists"
	SenderExists          = "sender_exists"
	CommunicationSetup    = "communication_setup"
	ExternalServiceExists = "external_service_exists"
	APIAccessConfigured   = "api_access_configured"
	WebhookConfigured     = "webhook_configured"
	CallbackConfigured    = "callback_configured"
)

// Action maps an action keyword or phrase to the assumptions it implies.
type Action struct {
	Phrase      string
	Assumptions []string
}

// Actions is evaluated in order; the order determines issue order.
var Actions = []Action{
	// authentication
	{"login", []string{UserExists, CredentialsExist}},
	{"log in", []string{UserExists, CredentialsExist}},
	{"sign in", []string{UserExists, CredentialsExist}},
	{"authenticate", []string{UserExists, CredentialsExist}},
	{"logout", []string{UserLoggedIn}},
	{"log out", []string{UserLoggedIn}},
	{"sign out", []string{UserLoggedIn}},

	// navigation and access
	{"navigate", []string{UserLoggedIn}},
	{"access", []string{UserLoggedIn, PermissionsGranted}},
	{"view", []string{UserLoggedIn, PermissionsGranted}},
	{"see", []string{UserLoggedIn, PermissionsGranted}},
	{"visit", []string{UserLoggedIn}},
	{"go to", []string{UserLoggedIn}},
	{"open", []string{UserLoggedIn}},
	{"enter", []string{UserLoggedIn}},
	{"browse", []string{UserLoggedIn}},

	// data manipulation
	{"submit", []string{FormFilled, UserLoggedIn}},
	{"save", []string{DataEntered, UserLoggedIn}},
	{"update", []string{RecordExists, UserLoggedIn, PermissionsGranted}},
	{"delete", []string{RecordExists, UserLoggedIn, PermissionsGranted}},
	{"edit", []string{RecordExists, UserLoggedIn, PermissionsGranted}},
	{"modify", []string{RecordExists, UserLoggedIn, PermissionsGranted}},
	{"create", []string{UserLoggedIn, PermissionsGranted}},
	{"add", []string{UserLoggedIn, PermissionsGranted}},
	{"insert", []string{UserLoggedIn, PermissionsGranted}},

	// search and filter
	{"search", []string{UserLoggedIn}},
	{"filter", []string{UserLoggedIn}},
	{"sort", []string{UserLoggedIn}},
	{"find", []string{UserLoggedIn}},
	{"query", []string{UserLoggedIn}},
	{"lookup", []string{UserLoggedIn}},

	// verification
	{"verify", []string{ConditionExists, UserLoggedIn}},
	{"check", []string{ConditionExists, UserLoggedIn}},
	{"validate", []string{DataExists, UserLoggedIn}},
	{"confirm", []string{ConditionExists, UserLoggedIn}},
	{"ensure", []string{ConditionExists, UserLoggedIn}},
	{"assert", []string{ConditionExists, UserLoggedIn}},
	{"test", []string{ConditionExists, UserLoggedIn}},

	// files
	{"upload", []string{FileExists, UserLoggedIn}},
	{"download", []string{FileExists, UserLoggedIn, PermissionsGranted}},
	{"export", []string{DataExists, UserLoggedIn}},
	{"import", []string{FileExists, UserLoggedIn, PermissionsGranted}},
	{"attach", []string{FileExists, UserLoggedIn}},
	{"share", []string{FileExists, UserLoggedIn, PermissionsGranted}},

	// communication
	{"send", []string{RecipientExists, UserLoggedIn}},
	{"receive", []string{SenderExists}},
	{"message", []string{CommunicationSetup}},
	{"email", []string{RecipientExists, UserLoggedIn}},
	{"notify", []string{RecipientExists, UserLoggedIn}},
	{"contact", []string{RecipientExists, UserLoggedIn}},
	{"communicate", []string{CommunicationSetup}},

	// roles
	{"admin", []string{AdminRole, UserLoggedIn}},
	{"manager", []string{ManagerRole, UserLoggedIn}},
	{"administrator", []string{AdminRole, UserLoggedIn}},
	{"supervisor", []string{ManagerRole, UserLoggedIn}},

	// errors and failures
	{"error", []string{ErrorTrigger}},
	{"fail", []string{FailureCondition}},
	{"crash", []string{ErrorTrigger}},
	{"break", []string{ErrorTrigger}},
	{"handle", []string{ErrorTrigger}},
	{"recover", []string{FailureCondition}},

	// configuration
	{"configure", []string{AdminRole, UserLoggedIn}},
	{"setup", []string{AdminRole, UserLoggedIn}},
	{"customize", []string{UserLoggedIn}},
	{"personalize", []string{UserLoggedIn}},
	{"settings", []string{UserLoggedIn}},
	{"preferences", []string{UserLoggedIn}},

	// reporting
	{"report", []string{DataExists, UserLoggedIn, PermissionsGranted}},
	{"analytics", []string{DataExists, UserLoggedIn, PermissionsGranted}},
	{"dashboard", []string{UserLoggedIn}},
	{"metrics", []string{DataExists, UserLoggedIn, PermissionsGranted}},
	{"statistics", []string{DataExists, UserLoggedIn, PermissionsGranted}},

	// integrations
	{"integrate", []string{ExternalServiceExists}},
	{"connect", []string{ExternalServiceExists}},
	{"sync", []string{ExternalServiceExists}},
	{"api", []string{APIAccessConfigured}},
	{"webhook", []string{WebhookConfigured}},
	{"callback", []string{CallbackConfigured}},
}

// AssumptionDescriptions are the human-readable forms of each key.
var AssumptionDescriptions = map[string]string{
	UserExists:            "Valid test user exists in the system",
	CredentialsExist:      "User credentials are available and valid",
	UserLoggedIn:          "User is already authenticated/logged in",
	PermissionsGranted:    "User has necessary permissions for the action",
	FormFilled:            "Form is already filled with valid data",
	DataEntered:           "Required data has been entered",
	RecordExists:          "Target record exists in the system",
	ConditionExists:       "Condition to verify is present",
	DataExists:            "Required data exists for validation",
	ErrorTrigger:          "Error condition can be triggered",
	FailureCondition:      "Failure scenario can be reproduced",
	AdminRole:             "Admin user role is available",
	ManagerRole:           "Manager user role is available",
	UserRole:              "Regular user role is available",
	FileExists:            "Required file exists for the operation",
	RecipientExists:       "Message recipient exists",
	SenderExists:          "Message sender exists",
	CommunicationSetup:    "Communication channel is configured",
	ExternalServiceExists: "External service or API is available and accessible",
	APIAccessConfigured:   "API access credentials and endpoints are configured",
	WebhookConfigured:     "Webhook endpoints are set up and accessible",
	CallbackConfigured:    "Callback mechanisms are properly configured",
}

// AssumptionCategories maps each key to its category.
var AssumptionCategories = map[string]Category{
	UserExists:            CategoryData,
	CredentialsExist:      CategoryData,
	UserLoggedIn:          CategoryState,
	PermissionsGranted:    CategoryState,
	FormFilled:            CategoryData,
	DataEntered:           CategoryData,
	RecordExists:          CategoryData,
	ConditionExists:       CategoryState,
	DataExists:            CategoryData,
	ErrorTrigger:          CategoryState,
	FailureCondition:      CategoryState,
	AdminRole:             CategoryState,
	ManagerRole:           CategoryState,
	UserRole:              CategoryState,
	FileExists:            CategoryData,
	RecipientExists:       CategoryData,
	SenderExists:          CategoryData,
	CommunicationSetup:    CategoryEnvironment,
	ExternalServiceExists: CategoryEnvironment,
	APIAccessConfigured:   CategoryEnvironment,
	WebhookConfigured:     CategoryEnvironment,
	CallbackConfigured:    CategoryEnvironment,
}

// ExplicitIndicators lists the phrases that state an assumption outright.
// A key missing from this table can never be explicit.
//
// The lists are deliberately literal substrings. "valid credentials" makes
// credentials_exist explicit through "credentials" while "valid login" does
// not; this is a known-imprecise heuristic.
var ExplicitIndicators = map[string][]string{
	UserExists:         {"user exists", "test user", "valid user"},
	CredentialsExist:   {"credentials", "password", "login details"},
	UserLoggedIn:       {"logged in", "authenticated", "signed in"},
	PermissionsGranted: {"permission", "authorized", "access granted"},
	FormFilled:         {"filled", "entered", "completed"},
	DataEntered:        {"entered", "provided", "input"},
	RecordExists:       {"exists", "available", "present"},
	ConditionExists:    {"condition", "scenario", "case"},
	DataExists:         {"data exists", "available data"},
	ErrorTrigger:       {"error occurs", "error condition"},
	FailureCondition:   {"failure", "error case"},
}

// CategoryOf returns the category for key, or CategoryUnknown.
func CategoryOf(key string) Category {
	if c, ok := AssumptionCategories[key]; ok {
		return c
	}
	return CategoryUnknown
}

// DescriptionOf returns the description for key, falling back to the key.
func DescriptionOf(key string) string {
	if d, ok := AssumptionDescriptions[key]; ok {
		return d
	}
	return key
}

// IsExplicit reports whether lowerText already states the assumption.
func IsExplicit(lowerText, key string) bool {
	for _, ind := range ExplicitIndicators[key] {
		if strings.Contains(lowerText, ind) {
			return true
		}
	}
	return false
}

var (
	// UIActions imply the statement runs against some concrete UI.
	UIActions = newTermSet("click", "type", "select", "scroll", "hover", "tap")

	// EnvironmentIndicators name a browser, platform or device.
	EnvironmentIndicators = newTermSet(
		"browser", "chrome", "firefox", "safari", "edge",
		"mobile", "desktop", "tablet", "ios", "android",
		"windows", "mac", "linux", "device", "network",
	)

	// UserCentricTerms only make sense for some signed-in user.
	UserCentricTerms = newTermSet("profile", "settings", "account", "dashboard")

	// UserContextIndicators establish who the user is.
	UserContextIndicators = newTermSet(
		"user", "login", "authenticate", "sign in", "logged in",
		"account", "profile", "session",
	)

	// DataActions operate on a data set that must already exist.
	DataActions = newTermSet("search", "filter", "sort", "export")

	// DataContextIndicators establish that the data set exists.
	DataContextIndicators = newTermSet(
		"data", "record", "entry", "information", "content",
		"database", "exists", "available", "present",
	)
)

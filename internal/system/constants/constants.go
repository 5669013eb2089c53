package constants

const ApiBasePath = "/api/v1"
const MatchingRulesApiPath = "matching-rules"
const ClientsApiPath = "clients"
const DefaultTenant = "default"

type contextKey string

const TenantContextKey contextKey = "tenant"
const TraceIDContextKey contextKey = "trace_id"
const UserIDContextKey contextKey = "user_id"

const TraceIDHeader = "X-Trace-Id"

// Rule types of a matching rule.
const (
	RuleTypeNormativa   = "NORMATIVA"
	RuleTypeScadenza    = "SCADENZA"
	RuleTypeOpportunita = "OPPORTUNITA"
)

var AllowedRuleTypes = map[string]bool{
	RuleTypeNormativa:   true,
	RuleTypeScadenza:    true,
	RuleTypeOpportunita: true,
}

// Condition group operators.
const (
	GroupAnd = "AND"
	GroupOr  = "OR"
)

// Leaf comparison operators.
const (
	OpEq       = "eq"
	OpNeq      = "neq"
	OpIn       = "in"
	OpContains = "contains"
	OpGte      = "gte"
	OpLte      = "lte"
)

// ProfileFieldPrefix routes a condition field to the client profile.
const ProfileFieldPrefix = "profile."

// Condition evaluation modes.
const (
	ConditionModeNested = "nested"
	ConditionModeFlat   = "flat"
)

const (
	DefaultSemanticThreshold = 0.7
	DefaultTimezone          = "Europe/Rome"
	DefaultQueueSize         = 1000
	ScoreDecimals            = 3
)

// Match methods.
const (
	MethodStructured = "structured"
	MethodSemantic   = "semantic"
)

const (
	MatchingRuleResource = "matching-rule"
	MatchResultResource  = "match-result"
	RuleMatchResource    = "rule-match"
)

// Permission scopes carried in the access token.
const (
	ScopeRulesView  = "matching_rules:view"
	ScopeMatchRun   = "matching:run"
	ScopeClientView = "clients:view"
)

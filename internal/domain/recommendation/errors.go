package recommendation

// Error codes carried by AppErrors returned from this package.
const (
	CodeInvalidProfile   = "invalid_profile"
	CodePersistenceError = "persistence_error"
	CodeNotFound         = "not_found"
	CodeNoRuleMatched    = "no_rule_matched"
)

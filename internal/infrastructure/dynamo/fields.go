package dynamo

// DynamoDB attribute names used in update expressions across all repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldRead        = "read"
	fieldRole        = "role"
	fieldEmail       = "email"
	fieldDisplayName = "display_name"
	fieldIssuedAt    = "issued_at"
	fieldUpdatedAt   = "updated_at"
)

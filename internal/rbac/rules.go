package rbac

const (
	PermExamParse    = "exam:parse"
	PermParseLogView = "parse-log:view"
)

// RolePermissions is the default policy. Students never reach the parser.
var RolePermissions = map[string][]string{
	"teacher": {
		PermExamParse,
		PermParseLogView,
	},
	"admin": {
		"*",
	},
}

package testcases

// All contains all test cases, grouped by category.
// The category name is used as a prefix in exported filenames.
var All = map[string][]TestCase{
	"basic":   basicCases,
	"shapes":  shapeCases,
	"texture": textureCases,
}

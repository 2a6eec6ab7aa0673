package pathutil_test

import (
	"fmt"

	"amal-cms/internal/handler/http/pathutil"
)

// ExampleNormalizePath demonstrates how path normalization works
// to prevent metrics label cardinality explosion.
func ExampleNormalizePath() {
	// Before normalization: Each program ID creates a unique path label
	// This would cause cardinality explosion in Prometheus metrics

	// After normalization: All program IDs map to the same template
	fmt.Println(pathutil.NormalizePath("/programs/123"))
	fmt.Println(pathutil.NormalizePath("/programs/456"))
	fmt.Println(pathutil.NormalizePath("/programs/789"))

	// Output:
	// /programs/:id
	// /programs/:id
	// /programs/:id
}

// ExampleNormalizePath_slugs demonstrates normalization for slug lookups.
func ExampleNormalizePath_slugs() {
	fmt.Println(pathutil.NormalizePath("/programs/slug/clean-water"))
	fmt.Println(pathutil.NormalizePath("/stories/slug/a-new-well"))
	fmt.Println(pathutil.NormalizePath("/jobs/slug/field-coordinator"))

	// Output:
	// /programs/slug/:slug
	// /stories/slug/:slug
	// /jobs/slug/:slug
}

// ExampleNormalizePath_static demonstrates that static endpoints remain unchanged.
func ExampleNormalizePath_static() {
	fmt.Println(pathutil.NormalizePath("/healthz"))
	fmt.Println(pathutil.NormalizePath("/metrics"))
	fmt.Println(pathutil.NormalizePath("/auth/token"))

	// Output:
	// /healthz
	// /metrics
	// /auth/token
}

// ExampleNormalizePath_search demonstrates that search endpoints remain unchanged.
func ExampleNormalizePath_search() {
	fmt.Println(pathutil.NormalizePath("/programs/search"))
	fmt.Println(pathutil.NormalizePath("/projects/search"))

	// Output:
	// /programs/search
	// /projects/search
}

// ExampleNormalizePath_queryParameters demonstrates that query parameters are stripped.
func ExampleNormalizePath_queryParameters() {
	fmt.Println(pathutil.NormalizePath("/programs/123?page=1"))
	fmt.Println(pathutil.NormalizePath("/programs/search?q=water"))
	fmt.Println(pathutil.NormalizePath("/healthz?format=json"))

	// Output:
	// /programs/:id
	// /programs/search
	// /healthz
}

// ExampleNormalizePath_trailingSlash demonstrates that trailing slashes are handled.
func ExampleNormalizePath_trailingSlash() {
	fmt.Println(pathutil.NormalizePath("/programs/123/"))
	fmt.Println(pathutil.NormalizePath("/projects/456/"))

	// Output:
	// /programs/:id
	// /projects/:id
}

// ExampleNormalizePath_nested demonstrates normalization of counter routes.
func ExampleNormalizePath_nested() {
	fmt.Println(pathutil.NormalizePath("/programs/123/views"))
	fmt.Println(pathutil.NormalizePath("/publications/456/downloads"))

	// Output:
	// /programs/:id/views
	// /publications/:id/downloads
}

// ExampleGetExpectedCardinality demonstrates how to check expected metric cardinality.
func ExampleGetExpectedCardinality() {
	cardinality := pathutil.GetExpectedCardinality()
	fmt.Printf("Expected unique path labels: ~%d\n", cardinality)

	// Output is approximate, so we just demonstrate the usage
	// In real output: Expected unique path labels: ~18
}

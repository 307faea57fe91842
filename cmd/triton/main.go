// Triton is an HTTP gateway fronting AI-backed study endpoints.
//
// It serves three AI routes behind two-tier per-IP rate limiting:
//   - Study plan generation (POST /generate-plan)
//   - Learning resource curation (POST /curate-resources)
//   - Document upload and grounded chat (/pdf/...)
//
// Usage:
//
//	# Start the gateway with default configuration
//	triton run
//
//	# Start with a custom configuration file
//	triton run --config /etc/triton/config.yaml
//
//	# Check a configuration file without starting
//	triton validate
//
//	# Show version information
//	triton version
package main

func main() {
	Execute()
}

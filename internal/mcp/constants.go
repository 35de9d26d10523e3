package mcp

const serverName = "genpass"

// maxPasswordLength bounds the length a client may request.
const maxPasswordLength = 4096

// Tool names.
const (
	toolGenerate    = "password_generate"
	toolProfileList = "password_profile_list"
	toolProfileShow = "password_profile_show"
	toolProfileSave = "password_profile_save"
)

// Common error messages and descriptions used across MCP tools.
const (
	descProfile = "Profile name (default: the configured default profile)"

	errRateLimited     = "rate limit exceeded, retry shortly"
	errCountTooLarge   = "count %d exceeds the maximum of %d"
	errLengthTooLarge  = "length %d exceeds the maximum of %d"
	errClipboardFailed = "copy to clipboard: %v"
)

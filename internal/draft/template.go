package draft

import _ "embed"

// weeknotesTemplate is the Jekyll post skeleton. {{PLACEHOLDER}} markers
// are substituted by Compose.
//
//go:embed templates/weeknotes.md
var weeknotesTemplate string

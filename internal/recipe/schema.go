package recipe

import (
	"fmt"

	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// recipeSchema is the CUE contract every recipe must satisfy. yaml.v3 catches
// unknown fields; the schema catches type and shape mistakes with better messages.
const recipeSchema = `
executable: string & !=""

#ofstream: {
	"base-file": string & !=""
	"test-file": string & !=""
}

#case: {
	executable?: string & !=""
	"return-code"?: int
	argv?: [...string]
	stdin?: string | [...string]
	stdout?: string
	stderr?: string
	timeout?: int & >=0
	ofstreams?: [...#ofstream]
	checks?: [...string & !=""]
	requires?: [...string & !=""]
}

"test-cases": {[string]: #case}
`

// validateSchema unifies the recipe document with the embedded CUE schema.
func validateSchema(path string, b []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(recipeSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("recipe schema: %v", err)
	}

	f, err := cueyaml.Extract(path, b)
	if err != nil {
		return fmt.Errorf("invalid recipe: %v", err)
	}
	doc := ctx.BuildFile(f)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("invalid recipe: %v", err)
	}

	if err := schema.Unify(doc).Validate(); err != nil {
		return fmt.Errorf("invalid recipe: %v", err)
	}
	return nil
}

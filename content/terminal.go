package content

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// The terminal program defines handle(cmd, args, facts) and returns a map
// with optional "lines" (array of strings), "exit" (string) and "clear"
// (bool). This dispatcher is appended to it.
const terminalDispatch = `
__reply := undefined
if __cmd != "" {
	__reply = handle(__cmd, __args, __facts)
}
`

// Reply is what the terminal program answers to one command line.
type Reply struct {
	Lines []string
	Exit  string
	Clear bool
}

// Terminal runs typed commands through a tengo program.
type Terminal struct {
	compiled *tengo.Compiled
}

func NewTerminal(src []byte) (*Terminal, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + terminalDispatch))
	_ = script.Add("__cmd", "")
	_ = script.Add("__args", []interface{}{})
	_ = script.Add("__facts", map[string]interface{}{})
	script.SetImports(stdlib.GetModuleMap("text", "fmt", "math", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("content: compile terminal: %w", err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("content: init terminal: %w", err)
	}
	return &Terminal{compiled: compiled}, nil
}

// Banner returns the program's "banner" global, if it defines one.
func (t *Terminal) Banner() []string {
	if !t.compiled.IsDefined("banner") {
		return nil
	}
	return toStrings(t.compiled.Get("banner").Value())
}

// Run handles one command line. Blank lines produce an empty reply.
func (t *Terminal) Run(line string, facts Facts) (Reply, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Reply{}, nil
	}
	args := make([]interface{}, 0, len(fields)-1)
	for _, f := range fields[1:] {
		args = append(args, f)
	}
	env := make(map[string]interface{}, len(facts))
	for k, v := range facts {
		env[k] = v
	}

	if err := t.compiled.Set("__cmd", strings.ToLower(fields[0])); err != nil {
		return Reply{}, err
	}
	if err := t.compiled.Set("__args", args); err != nil {
		return Reply{}, err
	}
	if err := t.compiled.Set("__facts", env); err != nil {
		return Reply{}, err
	}
	if err := t.compiled.Run(); err != nil {
		return Reply{}, fmt.Errorf("content: terminal %q: %w", fields[0], err)
	}

	out := t.compiled.Get("__reply").Map()
	reply := Reply{Lines: toStrings(out["lines"])}
	if s, ok := out["exit"].(string); ok {
		reply.Exit = strings.TrimSpace(s)
	}
	if b, ok := out["clear"].(bool); ok {
		reply.Clear = b
	}
	return reply, nil
}

func toStrings(v interface{}) []string {
	switch v := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, fmt.Sprint(e))
		}
		return out
	case string:
		return strings.Split(v, "\n")
	}
	return nil
}

package core

// Operation is the calling convention of a microservice: the declared
// parameters followed by the execution context. It returns a host status code.
type Operation func(params []*MsParam, rei *RuleExecInfo) int

// TableEntry is one microservice as seen by the rule engine.
//
// Plugins build an entry from their factory:
//
//	func init() {
//		core.RegisterPluginFactory("msi_example", func() (*core.TableEntry, error) {
//			return core.NewTableEntry("msi_example", 1, example), nil
//		})
//	}
type TableEntry struct {
	Name string
	// NumArgs counts the declared parameters only. The execution context is
	// appended implicitly.
	NumArgs int
	Op      Operation
}

// NewTableEntry returns an entry for op.
func NewTableEntry(name string, numArgs int, op Operation) *TableEntry {
	return &TableEntry{Name: name, NumArgs: numArgs, Op: op}
}

// Call invokes the operation after checking the argument count.
func (e *TableEntry) Call(params []*MsParam, rei *RuleExecInfo) int {
	if len(params) != e.NumArgs {
		return SysInvalidInputParam
	}
	return e.Op(params, rei)
}

// PluginFactory builds a microservice table entry.
type PluginFactory func() (*TableEntry, error)

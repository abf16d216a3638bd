package compiler

// Signature is what a call site needs to know about a function.
type Signature struct {
	ReturnType Type
	ParamTypes []Type
}

// SymbolTable is a stack of variable scopes plus one flat function table. Functions are
// never scoped: a name can be declared as a function once per table, and a nested
// declaration can't shadow it.
type SymbolTable struct {
	scopes    []map[string]Type
	functions map[string]Signature
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{functions: make(map[string]Signature)}
}

func (table *SymbolTable) EnterScope() {
	table.scopes = append(table.scopes, make(map[string]Type))
}

// ExitScope pops the innermost scope. Every EnterScope must be paired with an ExitScope.
func (table *SymbolTable) ExitScope() {
	if len(table.scopes) == 0 {
		return
	}
	table.scopes = table.scopes[:len(table.scopes)-1]
}

// Depth returns how many scopes are open.
func (table *SymbolTable) Depth() int {
	return len(table.scopes)
}

// Declare binds name in the innermost scope. It returns false, and binds nothing, if the
// innermost scope already has name or no scope is open. A name from an enclosing scope
// may be shadowed.
func (table *SymbolTable) Declare(name string, tp Type) bool {
	if len(table.scopes) == 0 {
		return false
	}
	current := table.scopes[len(table.scopes)-1]
	if _, ok := current[name]; ok {
		return false
	}
	current[name] = tp
	return true
}

func (table *SymbolTable) IsDeclared(name string) bool {
	_, ok := table.lookUpVar(name)
	return ok
}

// TypeOf returns the type of the innermost binding of name, InvalidType if there is none.
func (table *SymbolTable) TypeOf(name string) Type {
	tp, _ := table.lookUpVar(name)
	return tp
}

func (table *SymbolTable) lookUpVar(name string) (Type, bool) {
	for i := len(table.scopes) - 1; i >= 0; i-- {
		if tp, ok := table.scopes[i][name]; ok {
			return tp, true
		}
	}
	return InvalidType, false
}

// DeclareFunction registers a signature, false if name already names a function.
func (table *SymbolTable) DeclareFunction(name string, signature Signature) bool {
	if _, ok := table.functions[name]; ok {
		return false
	}
	table.functions[name] = signature
	return true
}

func (table *SymbolTable) HasFunction(name string) bool {
	_, ok := table.functions[name]
	return ok
}

// Function returns the signature of name, the zero Signature if it is not declared.
func (table *SymbolTable) Function(name string) Signature {
	return table.functions[name]
}

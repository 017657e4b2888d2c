package names

// RubyReservedWords are the Ruby keywords.
var RubyReservedWords = []string{
	"__encoding__", "__end__", "__file__", "__line__",
	"alias", "and", "begin", "break", "case", "class", "def", "defined?",
	"do", "else", "elsif", "end", "ensure", "false", "for", "if", "in",
	"module", "next", "nil", "not", "or", "redo", "rescue", "retry",
	"return", "self", "super", "then", "true", "undef", "unless", "until",
	"when", "while", "yield",
}

package parser

// TokenType representa o tipo de token
type TokenType string

const (
	TokenEOF     TokenType = "EOF"
	TokenIllegal TokenType = "ILLEGAL"
	TokenNewline TokenType = "NEWLINE"

	// Identificadores e literais
	TokenIdent   TokenType = "IDENT"
	TokenString  TokenType = "STRING"
	TokenInt     TokenType = "INT"
	TokenFloat   TokenType = "FLOAT"
	TokenBoolean TokenType = "BOOLEAN"

	// TokenDocComment carrega o texto de um comentário "///"
	TokenDocComment TokenType = "DOC_COMMENT"

	// Operadores e símbolos
	TokenAt       TokenType = "@"
	TokenAtAt     TokenType = "@@"
	TokenLParen   TokenType = "("
	TokenRParen   TokenType = ")"
	TokenLBrace   TokenType = "{"
	TokenRBrace   TokenType = "}"
	TokenLBracket TokenType = "["
	TokenRBracket TokenType = "]"
	TokenEqual    TokenType = "="
	TokenColon    TokenType = ":"
	TokenQuestion TokenType = "?"
	TokenComma    TokenType = ","
	TokenDot      TokenType = "."

	// Keywords
	TokenModel       TokenType = "model"
	TokenEnum        TokenType = "enum"
	TokenDatasource  TokenType = "datasource"
	TokenGenerator   TokenType = "generator"
	TokenTypeKeyword TokenType = "type"
)

// Token representa um token do lexer
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var keywords = map[string]TokenType{
	"model":      TokenModel,
	"enum":       TokenEnum,
	"datasource": TokenDatasource,
	"generator":  TokenGenerator,
	"type":       TokenTypeKeyword,
	"true":       TokenBoolean,
	"false":      TokenBoolean,
}

// IsKeyword verifica se uma string é uma keyword de bloco
func IsKeyword(ident string) bool {
	tok, ok := keywords[ident]
	return ok && tok != TokenBoolean
}

// LookupIdent retorna o TokenType para um identificador
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}

// isNameToken indica tokens aceitos como nome de campo ou argumento
// (Prisma permite campos chamados "type", "model", etc.)
func isNameToken(t TokenType) bool {
	switch t {
	case TokenIdent, TokenModel, TokenEnum, TokenDatasource, TokenGenerator, TokenTypeKeyword:
		return true
	}
	return false
}

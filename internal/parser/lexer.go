package parser

import (
	"strings"
)

// Lexer tokeniza o arquivo schema.prisma
type Lexer struct {
	input        string
	position     int  // posição do caractere atual
	readPosition int  // próxima posição de leitura
	ch           byte // caractere atual sendo examinado
	line         int  // linha do caractere atual
	column       int  // coluna do caractere atual
}

// NewLexer cria um novo lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

// readChar lê o próximo caractere e avança a posição
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL representa EOF
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar retorna o próximo caractere sem avançar
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) peekCharAt(offset int) byte {
	pos := l.position + offset
	if pos >= len(l.input) {
		return 0
	}
	return l.input[pos]
}

// NextToken retorna o próximo token
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	line, column := l.line, l.column
	single := func(t TokenType) Token {
		tok := Token{Type: t, Literal: string(l.ch), Line: line, Column: column}
		l.readChar()
		return tok
	}

	switch l.ch {
	case 0:
		return Token{Type: TokenEOF, Line: line, Column: column}
	case '@':
		if l.peekChar() == '@' {
			l.readChar()
			l.readChar()
			return Token{Type: TokenAtAt, Literal: "@@", Line: line, Column: column}
		}
		return single(TokenAt)
	case '/':
		if l.peekChar() == '/' && l.peekCharAt(2) == '/' {
			return Token{Type: TokenDocComment, Literal: l.readDocComment(), Line: line, Column: column}
		}
		return single(TokenIllegal)
	case '(':
		return single(TokenLParen)
	case ')':
		return single(TokenRParen)
	case '{':
		return single(TokenLBrace)
	case '}':
		return single(TokenRBrace)
	case '[':
		return single(TokenLBracket)
	case ']':
		return single(TokenRBracket)
	case '=':
		return single(TokenEqual)
	case ':':
		return single(TokenColon)
	case '?':
		return single(TokenQuestion)
	case ',':
		return single(TokenComma)
	case '.':
		return single(TokenDot)
	case '\n':
		return single(TokenNewline)
	case '"':
		literal, ok := l.readString()
		if !ok {
			return Token{Type: TokenIllegal, Literal: literal, Line: line, Column: column}
		}
		return Token{Type: TokenString, Literal: literal, Line: line, Column: column}
	}

	if isLetter(l.ch) {
		literal := l.readIdentifier()
		return Token{Type: LookupIdent(literal), Literal: literal, Line: line, Column: column}
	}
	if isDigit(l.ch) || (l.ch == '-' && isDigit(l.peekChar())) {
		t, literal := l.readNumber()
		return Token{Type: t, Literal: literal, Line: line, Column: column}
	}
	return single(TokenIllegal)
}

// skipWhitespace pula espaços em branco e comentários comuns.
// Comentários "///" são preservados como TokenDocComment.
func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == '/' && l.peekChar() == '/' && l.peekCharAt(2) != '/' {
			l.skipLineComment()
			continue
		}

		if l.ch == '/' && l.peekChar() == '*' {
			l.skipBlockComment()
			continue
		}

		break
	}
}

// skipLineComment pula um comentário de linha
func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// skipBlockComment pula um comentário de bloco
func (l *Lexer) skipBlockComment() {
	l.readChar() // pular '/'
	l.readChar() // pular '*'
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return
		}
		l.readChar()
	}
}

func (l *Lexer) readDocComment() string {
	l.readChar()
	l.readChar()
	l.readChar()
	position := l.position
	l.skipLineComment()
	return strings.TrimSpace(l.input[position:l.position])
}

// readIdentifier lê um identificador
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber lê um número (int ou float), com sinal opcional
func (l *Lexer) readNumber() (TokenType, string) {
	position := l.position
	tokenType := TokenInt

	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		tokenType = TokenFloat
		l.readChar() // pular '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return tokenType, l.input[position:l.position]
}

// readString lê uma string entre aspas, resolvendo escapes.
// Retorna ok=false quando a string não é fechada na mesma linha.
func (l *Lexer) readString() (string, bool) {
	var b strings.Builder
	l.readChar() // pular a aspas inicial
	for {
		switch l.ch {
		case '"':
			l.readChar()
			return b.String(), true
		case 0, '\n':
			return b.String(), false
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 0, '\n':
				return b.String(), false
			default:
				b.WriteByte(l.ch)
			}
		default:
			b.WriteByte(l.ch)
		}
		l.readChar()
	}
}

// isLetter verifica se o caractere pode compor um identificador
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isDigit verifica se o caractere é um dígito
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

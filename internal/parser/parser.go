package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser parseia tokens e constrói a AST
type Parser struct {
	lexer     *Lexer
	errors    []string
	curToken  Token
	peekToken Token
	doc       []string // comentários "///" pendentes
}

// NewParser cria um novo parser
func NewParser(lexer *Lexer) *Parser {
	p := &Parser{
		lexer:  lexer,
		errors: []string{},
	}

	// Ler dois tokens para ter curToken e peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// Errors retorna os erros encontrados durante o parsing
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) errorf(line int, format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Sprintf("linha %d: %s", line, fmt.Sprintf(format, args...)))
}

// nextToken avança os tokens
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

// skipTrivia pula quebras de linha e acumula comentários de documentação
func (p *Parser) skipTrivia() {
	for {
		switch p.curToken.Type {
		case TokenNewline:
			p.nextToken()
		case TokenDocComment:
			p.doc = append(p.doc, p.curToken.Literal)
			p.nextToken()
		default:
			return
		}
	}
}

func (p *Parser) takeDoc() string {
	doc := strings.Join(p.doc, "\n")
	p.doc = nil
	return doc
}

// expectToken verifica se o token atual é do tipo esperado
func (p *Parser) expectToken(t TokenType) bool {
	if p.curToken.Type == t {
		return true
	}
	p.errorf(p.curToken.Line, "esperado %s, encontrado %s (coluna %d)", t, describe(p.curToken), p.curToken.Column)
	return false
}

func describe(tok Token) string {
	switch tok.Type {
	case TokenEOF:
		return "fim do arquivo"
	case TokenNewline:
		return "quebra de linha"
	}
	if tok.Literal != "" {
		return fmt.Sprintf("%q", tok.Literal)
	}
	return string(tok.Type)
}

// ParseSchema parseia o schema completo
func (p *Parser) ParseSchema() *Schema {
	schema := &Schema{}

	for {
		p.skipTrivia()
		if p.curToken.Type == TokenEOF {
			break
		}

		switch p.curToken.Type {
		case TokenDatasource:
			line := p.curToken.Line
			name, fields := p.parseKeyValueBlock("datasource")
			if name != "" {
				schema.Datasources = append(schema.Datasources, &Datasource{Name: name, Fields: fields, Line: line})
			}
		case TokenGenerator:
			line := p.curToken.Line
			name, fields := p.parseKeyValueBlock("generator")
			if name != "" {
				schema.Generators = append(schema.Generators, &Generator{Name: name, Fields: fields, Line: line})
			}
		case TokenModel:
			if model := p.parseModel(); model != nil {
				schema.Models = append(schema.Models, model)
			}
		case TokenEnum:
			if enum := p.parseEnum(); enum != nil {
				schema.Enums = append(schema.Enums, enum)
			}
		default:
			p.errorf(p.curToken.Line, "token inesperado %s", describe(p.curToken))
			p.recoverToNextBlock()
		}
		p.doc = nil
	}

	return schema
}

// recoverToNextBlock descarta tokens até o início do próximo bloco
func (p *Parser) recoverToNextBlock() {
	p.nextToken()
	for p.curToken.Type != TokenEOF {
		switch p.curToken.Type {
		case TokenDatasource, TokenGenerator, TokenModel, TokenEnum:
			return
		}
		p.nextToken()
	}
}

// parseKeyValueBlock parseia blocos datasource e generator
func (p *Parser) parseKeyValueBlock(kind string) (string, []*Field) {
	p.nextToken() // keyword

	if p.curToken.Type != TokenIdent {
		p.errorf(p.curToken.Line, "esperado nome do %s", kind)
		p.recoverToNextBlock()
		return "", nil
	}
	name := p.curToken.Literal
	p.nextToken()

	if !p.expectToken(TokenLBrace) {
		p.recoverToNextBlock()
		return "", nil
	}
	p.nextToken()

	var fields []*Field
	for {
		p.skipTrivia()
		if p.curToken.Type == TokenRBrace || p.curToken.Type == TokenEOF {
			break
		}
		if field := p.parseField(); field != nil {
			fields = append(fields, field)
		} else {
			p.skipLine()
		}
	}

	p.closeBlock()
	return name, fields
}

func (p *Parser) closeBlock() {
	if p.curToken.Type == TokenRBrace {
		p.nextToken()
		return
	}
	p.errorf(p.curToken.Line, "esperado }, encontrado %s", describe(p.curToken))
}

// skipLine descarta o resto da linha atual
func (p *Parser) skipLine() {
	for p.curToken.Type != TokenNewline && p.curToken.Type != TokenEOF && p.curToken.Type != TokenRBrace {
		p.nextToken()
	}
}

// parseModel parseia um model
func (p *Parser) parseModel() *Model {
	model := &Model{Doc: p.takeDoc(), Line: p.curToken.Line}
	p.nextToken() // model

	if p.curToken.Type != TokenIdent {
		p.errorf(p.curToken.Line, "esperado nome do model")
		p.recoverToNextBlock()
		return nil
	}
	model.Name = p.curToken.Literal
	p.nextToken()

	if !p.expectToken(TokenLBrace) {
		p.recoverToNextBlock()
		return nil
	}
	p.nextToken()

	for {
		p.skipTrivia()
		if p.curToken.Type == TokenRBrace || p.curToken.Type == TokenEOF {
			break
		}

		switch {
		case p.curToken.Type == TokenAtAt:
			p.nextToken()
			if attr := p.parseAttribute(); attr != nil {
				model.Attributes = append(model.Attributes, attr)
			}
			p.doc = nil
		case isNameToken(p.curToken.Type):
			if field := p.parseModelField(); field != nil {
				model.Fields = append(model.Fields, field)
			}
		default:
			p.errorf(p.curToken.Line, "token inesperado %s no model '%s'", describe(p.curToken), model.Name)
			p.nextToken()
		}

		if p.curToken.Type == TokenDocComment {
			p.nextToken()
		}
		if p.curToken.Type != TokenNewline && p.curToken.Type != TokenRBrace && p.curToken.Type != TokenEOF {
			p.errorf(p.curToken.Line, "conteúdo inesperado %s no model '%s'", describe(p.curToken), model.Name)
			p.skipLine()
		}
	}

	p.closeBlock()
	return model
}

// parseModelField parseia um campo de model
func (p *Parser) parseModelField() *ModelField {
	field := &ModelField{
		Name: p.curToken.Literal,
		Doc:  p.takeDoc(),
		Line: p.curToken.Line,
	}
	p.nextToken()

	field.Type = p.parseFieldType()
	if field.Type == nil {
		p.skipLine()
		return nil
	}

	for p.curToken.Type == TokenAt {
		p.nextToken()
		if attr := p.parseAttribute(); attr != nil {
			field.Attributes = append(field.Attributes, attr)
		}
	}

	return field
}

// parseFieldType parseia o tipo de um campo: Nome, Nome[] ou Nome?
func (p *Parser) parseFieldType() *FieldType {
	if p.curToken.Type != TokenIdent {
		p.errorf(p.curToken.Line, "tipo de campo inválido: %s", describe(p.curToken))
		return nil
	}

	fieldType := &FieldType{Name: p.curToken.Literal}
	p.nextToken()

	if p.curToken.Type == TokenLBracket {
		p.nextToken()
		if !p.expectToken(TokenRBracket) {
			return nil
		}
		fieldType.IsArray = true
		p.nextToken()
	}

	if p.curToken.Type == TokenQuestion {
		fieldType.IsOptional = true
		p.nextToken()
	}

	if fieldType.IsArray && fieldType.IsOptional {
		p.errorf(p.curToken.Line, "listas não podem ser opcionais (%s[]?)", fieldType.Name)
	}

	return fieldType
}

// parseEnum parseia um enum
func (p *Parser) parseEnum() *Enum {
	enum := &Enum{Doc: p.takeDoc(), Line: p.curToken.Line}
	p.nextToken() // enum

	if p.curToken.Type != TokenIdent {
		p.errorf(p.curToken.Line, "esperado nome do enum")
		p.recoverToNextBlock()
		return nil
	}
	enum.Name = p.curToken.Literal
	p.nextToken()

	if !p.expectToken(TokenLBrace) {
		p.recoverToNextBlock()
		return nil
	}
	p.nextToken()

	for {
		p.skipTrivia()
		if p.curToken.Type == TokenRBrace || p.curToken.Type == TokenEOF {
			break
		}
		if p.curToken.Type != TokenIdent {
			p.errorf(p.curToken.Line, "valor de enum inválido: %s", describe(p.curToken))
			p.skipLine()
			continue
		}

		value := &EnumValue{Name: p.curToken.Literal}
		p.nextToken()
		for p.curToken.Type == TokenAt {
			p.nextToken()
			if attr := p.parseAttribute(); attr != nil {
				value.Attributes = append(value.Attributes, attr)
			}
		}
		enum.Values = append(enum.Values, value)
		p.doc = nil
	}

	p.closeBlock()
	return enum
}

// parseAttribute parseia um atributo (@id, @default(...), @db.Text, etc.)
func (p *Parser) parseAttribute() *Attribute {
	attr := &Attribute{Line: p.curToken.Line}

	if !isNameToken(p.curToken.Type) {
		p.errorf(p.curToken.Line, "esperado nome do atributo, encontrado %s", describe(p.curToken))
		return nil
	}
	attr.Name = p.curToken.Literal
	p.nextToken()

	// atributos compostos (ex: @db.VarChar)
	for p.curToken.Type == TokenDot {
		p.nextToken()
		if p.curToken.Type == TokenIdent {
			attr.Name += "." + p.curToken.Literal
			p.nextToken()
		}
	}

	if p.curToken.Type == TokenLParen {
		args, ok := p.parseArguments()
		if !ok {
			return nil
		}
		attr.Arguments = args
	}

	return attr
}

// parseArguments parseia "(a, nome: b, ...)". Espera curToken em "(".
func (p *Parser) parseArguments() ([]*AttributeArgument, bool) {
	p.nextToken() // (
	var args []*AttributeArgument
	for p.curToken.Type != TokenRParen {
		if p.curToken.Type == TokenEOF || p.curToken.Type == TokenNewline {
			p.errorf(p.curToken.Line, "esperado ), encontrado %s", describe(p.curToken))
			return nil, false
		}

		arg := &AttributeArgument{}
		if isNameToken(p.curToken.Type) && (p.peekToken.Type == TokenColon || p.peekToken.Type == TokenEqual) {
			arg.Name = p.curToken.Literal
			p.nextToken()
			p.nextToken()
		}
		arg.Value = p.parseValue()
		args = append(args, arg)

		if p.curToken.Type == TokenComma {
			p.nextToken()
		} else if p.curToken.Type != TokenRParen {
			p.errorf(p.curToken.Line, "esperado , ou ), encontrado %s", describe(p.curToken))
			return nil, false
		}
	}
	p.nextToken() // )
	return args, true
}

// parseValue parseia um valor (string, número, booleano, lista ou função)
func (p *Parser) parseValue() interface{} {
	tok := p.curToken
	switch tok.Type {
	case TokenString:
		p.nextToken()
		return tok.Literal
	case TokenInt:
		p.nextToken()
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.errorf(tok.Line, "inteiro inválido %s", tok.Literal)
		}
		return n
	case TokenFloat:
		p.nextToken()
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errorf(tok.Line, "número inválido %s", tok.Literal)
		}
		return f
	case TokenBoolean:
		p.nextToken()
		return tok.Literal == "true"
	case TokenLBracket:
		p.nextToken()
		values := []interface{}{}
		for p.curToken.Type != TokenRBracket {
			if p.curToken.Type == TokenEOF || p.curToken.Type == TokenNewline {
				p.errorf(p.curToken.Line, "lista não fechada")
				return values
			}
			values = append(values, p.parseValue())
			if p.curToken.Type == TokenComma {
				p.nextToken()
			}
		}
		p.nextToken()
		return values
	}

	if isNameToken(tok.Type) {
		p.nextToken()
		if p.curToken.Type != TokenLParen {
			return tok.Literal
		}
		args, ok := p.parseArguments()
		call := &FunctionCall{Name: tok.Literal}
		if ok {
			for _, a := range args {
				call.Args = append(call.Args, a.Value)
				call.ArgNames = append(call.ArgNames, a.Name)
			}
		}
		return call
	}

	p.errorf(tok.Line, "valor inesperado %s", describe(tok))
	p.nextToken()
	return nil
}

// parseField parseia "nome = valor" em datasource e generator
func (p *Parser) parseField() *Field {
	if p.curToken.Type != TokenIdent {
		p.errorf(p.curToken.Line, "esperado nome do campo, encontrado %s", describe(p.curToken))
		return nil
	}
	field := &Field{Name: p.curToken.Literal}
	p.nextToken()

	if !p.expectToken(TokenEqual) {
		return nil
	}
	p.nextToken()

	field.Value = p.parseValue()
	return field
}

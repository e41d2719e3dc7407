// Package limits concentra os tetos que protegem o processo de consultas
// que cresceriam sem limite na memória.
package limits

const (
	// MaxScanRows é quantas linhas uma única consulta pode carregar.
	// Acima disso a consulta falha e deve ser paginada com Take/Cursor.
	MaxScanRows = 100000

	// MaxOrderByFields limita os campos de um ORDER BY
	MaxOrderByFields = 20

	// MaxGroupByFields limita os campos de um GROUP BY
	MaxGroupByFields = 20

	// MaxRawQuerySize é o tamanho máximo, em bytes, de um SQL cru
	MaxRawQuerySize = 10 * 1024 * 1024
)

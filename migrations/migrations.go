// Package migrations embute os arquivos SQL aplicados na inicialização.
package migrations

import "embed"

// FS contém os arquivos VERSAO_nome.sql deste diretório
//
//go:embed *.sql
var FS embed.FS

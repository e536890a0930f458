// Package commands implementa o CLI financectl: migrações do banco,
// importação de planilhas e geração do relatório anual sem passar pela API HTTP.
package commands

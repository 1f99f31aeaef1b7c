package database

import (
	"context"
	"errors"
	"strings"

	"github.com/diillson/retail-admin-api/internal/domain/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "retail-admin-api.repository"

func tracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer(tracerName)
}

// startSpan abre o span de uma operação de repositório
func startSpan(ctx context.Context, name, operation, table string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("db.operation", operation),
		attribute.String("db.table", table),
	)
	return tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan registra o resultado no span; not found não é falha de infraestrutura
func endSpan(span trace.Span, err error) {
	switch {
	case err == nil:
		span.SetStatus(codes.Ok, "")
	case errors.Is(err, repository.ErrNotFound):
		span.SetAttributes(attribute.Bool("record.found", false))
		span.SetStatus(codes.Ok, "")
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// likeEscape é o caractere de escape do LIKE; a barra invertida não é portável entre MySQL e Postgres
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// searchClause monta o filtro case-insensitive combinado por OR sobre as colunas; % e _ do termo são literais
func searchClause(columns []string, search string) (string, []interface{}) {
	if search == "" || len(columns) == 0 {
		return "", nil
	}

	pattern := "%" + likeEscaper.Replace(search) + "%"
	clause := ""
	args := make([]interface{}, 0, len(columns))
	for i, column := range columns {
		if i > 0 {
			clause += " OR "
		}
		clause += "LOWER(" + column + ") LIKE LOWER(?) ESCAPE '" + likeEscape + "'"
		args = append(args, pattern)
	}
	return clause, args
}

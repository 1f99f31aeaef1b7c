package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migration representa uma migração SQL já aplicada
type Migration struct {
	ID        uint  `gorm:"primaryKey"`
	Version   int64 `gorm:"uniqueIndex"`
	Name      string
	AppliedAt time.Time
}

// TableName define o nome da tabela de controle
func (Migration) TableName() string {
	return "schema_migrations"
}

// MigrationFile representa um arquivo de migração
type MigrationFile struct {
	Version int64
	Name    string
	Path    string
}

// MigrationManager aplica os arquivos .sql (seed de localidades e afins) em ordem de versão
type MigrationManager struct {
	db        *gorm.DB
	logger    *zap.Logger
	files     fs.FS
	directory string
	now       func() time.Time
}

// NewMigrationManager cria um novo gerenciador de migrações.
// files é lido para aplicar; directory é onde CreateMigration grava novos arquivos.
func NewMigrationManager(db *gorm.DB, logger *zap.Logger, files fs.FS, directory string) *MigrationManager {
	return &MigrationManager{
		db:        db,
		logger:    logger,
		files:     files,
		directory: directory,
		now:       time.Now,
	}
}

// Initialize cria a tabela de controle se não existir
func (m *MigrationManager) Initialize(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&Migration{}); err != nil {
		return fmt.Errorf("falha ao criar tabela de migrações: %w", err)
	}
	return nil
}

// Applied retorna as migrações já registradas, por versão
func (m *MigrationManager) Applied(ctx context.Context) ([]Migration, error) {
	if err := m.Initialize(ctx); err != nil {
		return nil, err
	}

	var applied []Migration
	if err := m.db.WithContext(ctx).Order("version").Find(&applied).Error; err != nil {
		return nil, fmt.Errorf("falha ao buscar migrações aplicadas: %w", err)
	}
	return applied, nil
}

// ApplyMigrations aplica todas as migrações pendentes, uma transação por arquivo
func (m *MigrationManager) ApplyMigrations(ctx context.Context) error {
	applied, err := m.Applied(ctx)
	if err != nil {
		return err
	}

	appliedVersions := make(map[int64]bool, len(applied))
	for _, migration := range applied {
		appliedVersions[migration.Version] = true
	}

	migrationFiles, err := m.findMigrationFiles()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.logger.Warn("Diretório de migrações não encontrado; nada a aplicar", zap.String("directory", m.directory))
			return nil
		}
		return fmt.Errorf("falha ao listar arquivos de migração: %w", err)
	}

	sort.Slice(migrationFiles, func(i, j int) bool {
		return migrationFiles[i].Version < migrationFiles[j].Version
	})

	for _, file := range migrationFiles {
		if appliedVersions[file.Version] {
			m.logger.Debug("Migração já aplicada", zap.Int64("version", file.Version), zap.String("name", file.Name))
			continue
		}

		if err := m.apply(ctx, file); err != nil {
			return err
		}

		m.logger.Info("Migração aplicada com sucesso", zap.Int64("version", file.Version), zap.String("name", file.Name))
	}

	return nil
}

func (m *MigrationManager) apply(ctx context.Context, file MigrationFile) error {
	m.logger.Info("Aplicando migração", zap.Int64("version", file.Version), zap.String("name", file.Name))

	content, err := fs.ReadFile(m.files, file.Path)
	if err != nil {
		return fmt.Errorf("falha ao ler arquivo de migração: %w", err)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sqlCmd := range splitSQLCommands(string(content)) {
			sqlCmd = strings.TrimSpace(sqlCmd)
			if sqlCmd == "" {
				continue
			}
			if err := tx.Exec(sqlCmd).Error; err != nil {
				return fmt.Errorf("falha ao executar migração %s: %w", file.Name, err)
			}
		}

		if err := tx.Create(&Migration{
			Version:   file.Version,
			Name:      file.Name,
			AppliedAt: m.now(),
		}).Error; err != nil {
			return fmt.Errorf("falha ao registrar migração: %w", err)
		}
		return nil
	})
}

// splitSQLCommands divide o SQL por ponto e vírgula, ignorando os que estão em strings ou comentários
func splitSQLCommands(sql string) []string {
	var commands []string
	var current strings.Builder
	inString := false
	inLineComment := false
	inBlockComment := false

	for i := 0; i < len(sql); i++ {
		ch := sql[i]

		switch {
		case !inString && !inBlockComment && !inLineComment && ch == '-' && i+1 < len(sql) && sql[i+1] == '-':
			inLineComment = true
		case inLineComment && ch == '\n':
			inLineComment = false
		case !inString && !inLineComment && !inBlockComment && ch == '/' && i+1 < len(sql) && sql[i+1] == '*':
			inBlockComment = true
		case inBlockComment && ch == '*' && i+1 < len(sql) && sql[i+1] == '/':
			inBlockComment = false
			current.WriteString("*/")
			i++
			continue
		case !inLineComment && !inBlockComment && ch == '\'':
			inString = !inString
		case !inString && !inLineComment && !inBlockComment && ch == ';':
			current.WriteByte(ch)
			commands = append(commands, current.String())
			current.Reset()
			continue
		}

		current.WriteByte(ch)
	}

	if last := strings.TrimSpace(current.String()); last != "" && !onlyComments(last) {
		commands = append(commands, last)
	}

	return commands
}

// onlyComments informa se o trecho restante não tem SQL executável
func onlyComments(sql string) bool {
	for _, line := range strings.Split(sql, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return false
		}
	}
	return true
}

// findMigrationFiles encontra os arquivos no formato VERSAO_nome.sql
func (m *MigrationManager) findMigrationFiles() ([]MigrationFile, error) {
	var files []MigrationFile

	err := fs.WalkDir(m.files, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".sql") {
			return nil
		}

		parts := strings.SplitN(d.Name(), "_", 2)
		if len(parts) != 2 {
			m.logger.Warn("Formato de arquivo de migração inválido", zap.String("file", d.Name()))
			return nil
		}

		version, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			m.logger.Warn("Versão de migração inválida", zap.String("file", d.Name()))
			return nil
		}

		files = append(files, MigrationFile{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			Path:    path,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// CreateMigration cria um novo arquivo de migração vazio em directory
func (m *MigrationManager) CreateMigration(name string) (string, error) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	if name == "" {
		return "", errors.New("migration name is required")
	}

	if err := os.MkdirAll(m.directory, 0755); err != nil {
		return "", fmt.Errorf("falha ao criar diretório: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.sql", m.now().Format("20060102150405"), name)
	path := filepath.Join(m.directory, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("falha ao criar arquivo: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("falha ao fechar arquivo: %w", err)
	}

	return path, nil
}

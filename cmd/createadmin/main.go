package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/diillson/retail-admin-api/internal/adapter/database"
	"github.com/diillson/retail-admin-api/internal/app"
	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/internal/domain/repository"
	"github.com/diillson/retail-admin-api/internal/validation"
	"github.com/diillson/retail-admin-api/pkg/config"
	"github.com/diillson/retail-admin-api/pkg/security"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var (
		firstName  string
		lastName   string
		email      string
		password   string
		configPath string
		force      bool
		verbose    bool
	)

	flag.StringVar(&firstName, "first-name", "Super", "Nome do administrador")
	flag.StringVar(&lastName, "last-name", "Admin", "Sobrenome do administrador")
	flag.StringVar(&email, "email", "", "Email do administrador")
	flag.StringVar(&password, "password", "", "Senha do administrador (mínimo 6 caracteres)")
	flag.StringVar(&configPath, "config", "./config", "Diretório do config.yaml")
	flag.BoolVar(&force, "force", false, "Promove e redefine a senha de uma conta existente sem perguntar")
	flag.BoolVar(&verbose, "verbose", false, "Mostrar logs detalhados")
	flag.Parse()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		fmt.Println("Erro: email e password são obrigatórios.")
		flag.Usage()
		os.Exit(1)
	}
	if !validation.IsEmail(email) {
		fmt.Println("Erro: informe um email válido.")
		os.Exit(1)
	}
	if len(password) < 6 {
		fmt.Println("Erro: a senha deve ter pelo menos 6 caracteres.")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	// Só erros, a menos que -verbose
	zcfg := zap.NewProductionConfig()
	if !verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
		zcfg.OutputPaths = []string{"stderr"}
	}
	logger, err := zcfg.Build()
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, app.DatabaseConfig(cfg.Database), logger)
	if err != nil {
		fmt.Printf("Erro ao conectar ao banco de dados: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	users := database.NewUserRepository(db.DB(), logger)
	hasher := security.NewPasswordHasher(cfg.Auth.BcryptCost)

	hash, err := hasher.Hash(password)
	if err != nil {
		fmt.Printf("Erro ao processar senha: %v\n", err)
		os.Exit(1)
	}

	admin, updated, err := upsertAdmin(ctx, users, &model.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  hash,
		Role:      model.RoleSuperAdmin,
	}, force)
	if err != nil {
		fmt.Printf("Erro ao salvar administrador: %v\n", err)
		os.Exit(1)
	}
	if admin == nil {
		fmt.Println("Operação cancelada pelo usuário.")
		return
	}

	keyManager, err := security.NewKeyManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration, logger,
		security.WithIssuer(cfg.Auth.Issuer))
	if err != nil {
		fmt.Printf("Erro ao inicializar gerenciador de tokens: %v\n", err)
		os.Exit(1)
	}
	token, err := keyManager.GenerateToken(security.TokenPayload{ID: admin.ID, Email: admin.Email, Role: string(admin.Role)})
	if err != nil {
		fmt.Printf("Erro ao gerar token: %v\n", err)
		os.Exit(1)
	}

	if updated {
		fmt.Println("Conta existente promovida a SUPER_ADMIN")
	} else {
		fmt.Println("Administrador criado com sucesso")
	}
	fmt.Printf("ID:    %s\n", admin.ID)
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("Role:  %s\n", admin.Role)
	fmt.Printf("Token (expira em %s):\n%s\n", keyManager.TTL(), token)
}

// upsertAdmin cria a conta ou, com confirmação, promove a existente; nil sem erro é cancelamento
func upsertAdmin(ctx context.Context, users repository.UserRepository, admin *model.User, force bool) (*model.User, bool, error) {
	existing, err := users.FindByEmail(ctx, admin.Email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		if err := users.Create(ctx, admin); err != nil {
			return nil, false, err
		}
		return admin, false, nil
	case err != nil:
		return nil, false, err
	}

	if !force && !confirm(fmt.Sprintf("Usuário '%s' já existe. Promover a SUPER_ADMIN e redefinir a senha? (s/n): ", admin.Email)) {
		return nil, false, nil
	}

	user, err := users.Update(ctx, existing.ID, map[string]interface{}{
		"role":     model.RoleSuperAdmin,
		"password": admin.Password,
	})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer == "s" || answer == "S"
}

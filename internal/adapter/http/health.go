package http

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthChecker implementa endpoints de health check
type HealthChecker struct {
	logger       *zap.Logger
	version      string
	dependencies []Dependency
}

// DatabaseChecker define a interface para verificar o banco de dados
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// Dependency representa um componente do qual o sistema depende
type Dependency struct {
	Name     string
	Check    func(context.Context) error
	Critical bool // Se true, falha deste componente faz o health check falhar
}

type checkResult struct {
	name     string
	err      error
	duration time.Duration
	critical bool
}

// NewHealthChecker cria um novo health checker; o banco é dependência crítica
func NewHealthChecker(db DatabaseChecker, version string, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{
		logger:  logger,
		version: version,
		dependencies: []Dependency{
			{
				Name:     "database",
				Check:    db.Ping,
				Critical: true,
			},
		},
	}
}

// AddDependency registra uma verificação adicional
func (h *HealthChecker) AddDependency(dep Dependency) {
	h.dependencies = append(h.dependencies, dep)
}

// LivenessCheck verifica se o aplicativo está vivo (execução básica)
func (h *HealthChecker) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
		"time":   time.Now(),
	})
}

// ReadinessCheck verifica se o aplicativo está pronto para receber tráfego
func (h *HealthChecker) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, checks := h.runChecks(ctx, false)

	c.JSON(status, gin.H{
		"status": statusLabel(status),
		"time":   time.Now(),
		"checks": checks,
	})
}

// DetailedHealth fornece informações detalhadas sobre o sistema
func (h *HealthChecker) DetailedHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	status, checks := h.runChecks(ctx, true)

	c.JSON(status, gin.H{
		"status":      statusLabel(status),
		"time":        time.Now(),
		"version":     h.version,
		"environment": getEnvironment(),
		"checks":      checks,
		"system":      getSystemInfo(),
	})
}

// runChecks executa as dependências em paralelo
func (h *HealthChecker) runChecks(ctx context.Context, withErrors bool) (int, map[string]interface{}) {
	results := make(chan checkResult, len(h.dependencies))
	var wg sync.WaitGroup

	for _, dep := range h.dependencies {
		wg.Add(1)
		go func(d Dependency) {
			defer wg.Done()

			start := time.Now()
			err := d.Check(ctx)
			results <- checkResult{name: d.Name, err: err, duration: time.Since(start), critical: d.Critical}
		}(dep)
	}

	wg.Wait()
	close(results)

	status := http.StatusOK
	checks := make(map[string]interface{}, len(h.dependencies))
	for r := range results {
		detail := gin.H{
			"status":   "UP",
			"time":     r.duration.String(),
			"critical": r.critical,
		}
		if r.err != nil {
			detail["status"] = "DOWN"
			if withErrors {
				detail["error"] = r.err.Error()
			}
			h.logger.Error("health check falhou",
				zap.String("dependency", r.name),
				zap.Error(r.err))
			if r.critical {
				status = http.StatusServiceUnavailable
			}
		}
		checks[r.name] = detail
	}

	return status, checks
}

func statusLabel(status int) string {
	if status != http.StatusOK {
		return "DOWN"
	}
	return "UP"
}

// getEnvironment retorna o ambiente atual
func getEnvironment() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return "development"
	}
	return env
}

// getSystemInfo retorna informações sobre o sistema
func getSystemInfo() gin.H {
	return gin.H{
		"go_version":    runtime.Version(),
		"go_os":         runtime.GOOS,
		"go_arch":       runtime.GOARCH,
		"num_cpu":       runtime.NumCPU(),
		"num_goroutine": runtime.NumGoroutine(),
		"memory_alloc":  getMemoryStats(),
	}
}

// getMemoryStats retorna estatísticas de memória
func getMemoryStats() gin.H {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return gin.H{
		"alloc_mb":       float64(m.Alloc) / 1024 / 1024,
		"total_alloc_mb": float64(m.TotalAlloc) / 1024 / 1024,
		"sys_mb":         float64(m.Sys) / 1024 / 1024,
		"num_gc":         m.NumGC,
	}
}

// Package handlers provides the HTTP and gRPC servers for the HR service,
// bridging the transport layer and business logic and translating between
// JSON request bodies and domain models.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gartstein/hr/internal/hr/middleware"
	"github.com/gartstein/hr/internal/hr/models"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// EmployeeController defines the business logic interface the employee
// handlers invoke.
type EmployeeController interface {
	AddEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	GetEmployee(ctx context.Context, id int) (*models.Employee, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	ListEmployeesByGender(ctx context.Context, gender string) ([]models.Employee, error)
	ListEmployeesByPage(ctx context.Context, page, pageSize int) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, id int, values *models.Employee) (*models.Employee, error)
	RemoveEmployee(ctx context.Context, id int) error
}

// CompanyController defines the business logic interface the company
// handlers invoke.
type CompanyController interface {
	AddCompany(ctx context.Context, company *models.Company) (*models.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	ListCompaniesByPage(ctx context.Context, page, pageSize int) ([]models.Company, error)
	ListCompanyEmployees(ctx context.Context, id uuid.UUID) ([]models.Employee, error)
	UpdateCompany(ctx context.Context, id uuid.UUID, values *models.Company) (*models.Company, error)
	RemoveCompany(ctx context.Context, id uuid.UUID) error
}

// Registrar binds a resource's routes on the HTTP mux.
type Registrar interface {
	Register(mux *runtime.ServeMux) error
}

// Server holds references to both a gRPC server and an HTTP server. The
// gRPC side exposes the standard health and reflection services.
type Server struct {
	grpcServer   *grpc.Server
	httpServer   *http.Server
	health       *health.Server
	mux          *runtime.ServeMux
	logger       *zap.Logger
	grpcEndpoint string
	httpEndpoint string
}

// NewServer constructs a Server with separate endpoints for gRPC and HTTP.
func NewServer(
	grpcPort int,
	httpPort int,
	logger *zap.Logger,
	grpcOpts ...grpc.ServerOption,
) *Server {
	grpcServer := grpc.NewServer(grpcOpts...)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	return &Server{
		grpcServer:   grpcServer,
		httpServer:   &http.Server{ReadHeaderTimeout: 10 * time.Second},
		health:       healthServer,
		mux:          runtime.NewServeMux(),
		logger:       logger,
		grpcEndpoint: fmt.Sprintf(":%d", grpcPort),
		httpEndpoint: fmt.Sprintf(":%d", httpPort),
	}
}

// RegisterHTTPHandlers binds every resource on the mux, adds /healthz and
// wraps the mux with request logging.
func (s *Server) RegisterHTTPHandlers(registrars ...Registrar) error {
	for _, r := range registrars {
		if err := r.Register(s.mux); err != nil {
			return err
		}
	}
	if err := s.mux.HandlePath(http.MethodGet, "/healthz", s.healthz); err != nil {
		return err
	}

	s.httpServer.Handler = middleware.HTTPLogging(s.mux, s.logger)
	s.httpServer.Addr = s.httpEndpoint
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// Handler returns the HTTP handler configured by RegisterHTTPHandlers.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the gRPC and HTTP servers concurrently, returning on the first error.
func (s *Server) Start() error {
	var wg sync.WaitGroup
	wg.Add(2)
	errChan := make(chan error, 2)

	go func() {
		defer wg.Done()
		s.logger.Info("Starting gRPC server", zap.String("endpoint", s.grpcEndpoint))
		lis, err := net.Listen("tcp", s.grpcEndpoint)
		if err != nil {
			errChan <- fmt.Errorf("gRPC listen error: %w", err)
			return
		}
		s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC serve error: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		s.logger.Info("Starting HTTP server", zap.String("endpoint", s.httpEndpoint))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP serve error: %w", err)
		}
	}()

	go func() {
		wg.Wait()
		close(errChan)
	}()

	for err := range errChan {
		if err != nil {
			return err
		}
	}
	return nil
}

// Stop gracefully shuts down both gRPC and HTTP servers.
func (s *Server) Stop() {
	s.logger.Info("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.health.Shutdown()
	s.grpcServer.GracefulStop()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.logger.Info("Servers stopped")
}

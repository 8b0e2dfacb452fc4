package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/changhyeonkim/sales-crm/internal/config"
	"github.com/changhyeonkim/sales-crm/internal/customer"
	"github.com/changhyeonkim/sales-crm/internal/shared/database"
	"github.com/changhyeonkim/sales-crm/internal/shared/logger"
	"github.com/changhyeonkim/sales-crm/internal/user"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type options struct {
	env   string
	owner string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the crmctl command tree. Reports go to out, logs to errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "crmctl",
		Short: "sales-crm 고객 데이터 관리 도구",
		Long: `crmctl works on the same SQLite store as the server.

Examples:
  crmctl --owner user1 import customers.csv
  crmctl --owner user1 export -o customers.csv
  crmctl age 1990-02-28`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetupWithWriter(opts.env, errOut)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&opts.env, "env", "local", "Environment (local|dev|prod), selects .env.<env>")
	root.PersistentFlags().StringVar(&opts.owner, "owner", "", "Login id whose customer book is used")

	root.AddCommand(
		newImportCmd(opts),
		newExportCmd(opts),
		newAgeCmd(),
	)
	return root
}

// store is what import and export need: an open database and the owner's id
type store struct {
	db      *database.DB
	ownerID uint32
	service *customer.CustomerService
}

func openStore(ctx context.Context, opts *options) (*store, error) {
	if opts.owner == "" {
		return nil, errors.New("--owner 로그인 ID가 필요합니다")
	}

	cfg, err := config.Load(opts.env)
	if err != nil {
		return nil, fmt.Errorf("설정 로드 실패: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}

	owner, err := user.NewUserRepository().FindByLoginID(ctx, db.DB, opts.owner)
	if err != nil {
		_ = db.Close()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("사용자 login_id=%s: %w", opts.owner, user.ErrUserNotFound)
		}
		return nil, fmt.Errorf("사용자 조회 실패: %w", err)
	}

	return &store{
		db:      db,
		ownerID: owner.ID,
		service: customer.NewCustomerService(db.DB, customer.NewCustomerRepository(), cfg.Customer),
	}, nil
}

func (s *store) Close() error {
	return s.db.Close()
}

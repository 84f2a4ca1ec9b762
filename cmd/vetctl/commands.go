package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/vetclinic-api/internal/config"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	"github.com/jwalitptl/vetclinic-api/internal/repository/postgres"
	reportService "github.com/jwalitptl/vetclinic-api/internal/service/report"
	userService "github.com/jwalitptl/vetclinic-api/internal/service/user"
	"github.com/jwalitptl/vetclinic-api/pkg/logger"
	"github.com/jwalitptl/vetclinic-api/pkg/security"
)

type cli struct {
	out        io.Writer
	configPath string
	cfg        *config.Config
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	cmd := &cobra.Command{
		Use:           "vetctl",
		Short:         "Administration tool for the vet clinic API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var paths []string
			if c.configPath != "" {
				paths = append(paths, c.configPath)
			}
			cfg, err := config.Load(paths...)
			if err != nil {
				return err
			}
			c.cfg = cfg
			logger.Setup(logger.Config{Level: cfg.Log.Level, Format: "console", Output: os.Stderr})
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&c.configPath, "config-dir", "", "directory containing config.yml")

	cmd.AddCommand(c.newMigrateCmd())
	cmd.AddCommand(c.newUserCmd())
	cmd.AddCommand(c.newReportCmd())
	return cmd
}

func (c *cli) withDB(ctx context.Context, fn func(*sqlx.DB) error) error {
	db, err := postgres.NewDB(ctx, c.cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func (c *cli) newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDB(cmd.Context(), func(db *sqlx.DB) error {
				if err := postgres.Migrate(cmd.Context(), db); err != nil {
					return err
				}
				fmt.Fprintln(c.out, "schema is up to date")
				return nil
			})
		},
	}
}

func (c *cli) newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage back office operators",
	}

	var req model.CreateUserRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an operator account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Password == "" {
				req.Password = os.Getenv("VETCTL_PASSWORD")
			}
			if req.Name == "" || req.Email == "" || req.Password == "" {
				return fmt.Errorf("--name, --email and a password are required")
			}

			return c.withDB(cmd.Context(), func(db *sqlx.DB) error {
				users := userService.NewService(
					postgres.NewUserRepository(postgres.NewBaseRepository(db)),
					security.NewBcryptHasher(bcrypt.DefaultCost),
				)
				user, err := users.CreateUser(cmd.Context(), &req)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "created operator %d <%s>\n", user.ID, user.Email)
				return nil
			})
		},
	}
	create.Flags().StringVar(&req.Name, "name", "", "operator name")
	create.Flags().StringVar(&req.Email, "email", "", "login email")
	create.Flags().StringVar(&req.Password, "password", "", "password (or set VETCTL_PASSWORD)")

	cmd.AddCommand(create)
	return cmd
}

const dashboardTemplate = `Painel ({{.Now}})
Clientes:            {{.D.TotalClients}}
Animais:             {{.D.TotalAnimals}}
Veterinários:        {{.D.TotalVeterinarians}}
Consultas:           {{.D.TotalConsultations}}
Procedimentos:       {{.D.TotalProcedures}}
Consultas no mês:    {{.D.ConsultationsThisMonth}}
Receita no mês:      R$ {{printf "%.2f" .D.RevenueThisMonth}}
Consultas pendentes: {{.D.PendingConsultations}}
`

func (c *cli) reports(db *sqlx.DB) *reportService.Service {
	base := postgres.NewBaseRepository(db)
	return reportService.NewService(reportService.Deps{
		Clients:       postgres.NewClientRepository(base),
		Animals:       postgres.NewAnimalRepository(base),
		Veterinarians: postgres.NewVeterinarianRepository(base),
		Procedures:    postgres.NewProcedureRepository(base),
		Consultations: postgres.NewConsultationRepository(base),
		Reports:       postgres.NewReportRepository(base),
	}, reportService.WithLocation(c.cfg.Reports.Location()))
}

func (c *cli) newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print reports without going through the API",
	}

	dashboard := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDB(cmd.Context(), func(db *sqlx.DB) error {
				svc := c.reports(db)
				d, err := svc.Dashboard(cmd.Context(), nil)
				if err != nil {
					return err
				}
				t := template.Must(template.New("dashboard").Parse(dashboardTemplate))
				return t.Execute(c.out, map[string]interface{}{
					"Now": time.Now().In(svc.Location()).Format("02/01/2006 15:04"),
					"D":   d,
				})
			})
		},
	}

	var (
		params []string
		output string
	)
	export := &cobra.Command{
		Use:       "export <clients|pets|procedures|veterinarians|consultations>",
		Short:     "Write a report list as CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"clients", "pets", "procedures", "veterinarians", "consultations"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := reportService.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("unknown report %q", args[0])
			}
			q, err := parseParams(params)
			if err != nil {
				return err
			}

			return c.withDB(cmd.Context(), func(db *sqlx.DB) error {
				table, err := c.reports(db).Export(cmd.Context(), nil, kind, q)
				if err != nil {
					return err
				}
				if output == "" || output == "-" {
					return table.WriteCSV(c.out)
				}
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				if err := table.WriteCSV(f); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "wrote %d rows to %s\n", len(table.Rows), output)
				return nil
			})
		},
	}
	export.Flags().StringArrayVarP(&params, "filter", "f", nil, "report filter as key=value, e.g. -f status=realizada")
	export.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	cmd.AddCommand(dashboard, export)
	return cmd
}

func parseParams(params []string) (url.Values, error) {
	q := url.Values{}
	for _, p := range params {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q, expected key=value", p)
		}
		q.Add(key, value)
	}
	return q, nil
}

package command

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/dalemusser/staffboard/internal/app/store/employees"
	"github.com/dalemusser/staffboard/internal/app/system/timeouts"
	"github.com/dalemusser/staffboard/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/jaswdr/faker"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const defaultNbEntries = 100

type seedOptions struct {
	out     string
	format  string
	seed    int64
	mongo   mongoOptions
	replace bool
}

type mongoOptions struct {
	uri        string
	database   string
	collection string
}

func (cl *commandline) seedCmd() *cobra.Command {
	var o seedOptions
	cmd := &cobra.Command{
		Use:   "seed [n]",
		Short: "Generate a synthetic employee dataset (100 records by default)",
		Example: `  staffctl seed --out employees.json
  staffctl seed 500 --format yaml --seed 42 --out employees.yaml
  staffctl seed 250 --mongo-uri mongodb://localhost:27017 --replace`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNbEntries(args)
			if err != nil {
				return err
			}
			seed := o.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			recs := generate(faker.NewWithSeed(rand.NewSource(seed)), n)
			cl.log.Debug("generated employees", zap.Int("count", len(recs)), zap.Int64("seed", seed))

			if o.mongo.uri != "" {
				return cl.seedMongo(cmd.Context(), o, recs, cmd.OutOrStdout())
			}
			return cl.seedFile(o, recs, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&o.out, "out", "o", "-", `output file ("-" for stdout)`)
	cmd.Flags().StringVar(&o.format, "format", "", "json or yaml (default: from --out extension, else json)")
	cmd.Flags().Int64Var(&o.seed, "seed", 0, "random seed for reproducible output (0 picks one)")
	cmd.Flags().StringVar(&o.mongo.uri, "mongo-uri", "", "insert into MongoDB at this URI instead of writing a file")
	cmd.Flags().StringVar(&o.mongo.database, "mongo-database", "staffboard", "MongoDB database")
	cmd.Flags().StringVar(&o.mongo.collection, "mongo-collection", employees.DefaultCollection, "MongoDB collection")
	cmd.Flags().BoolVar(&o.replace, "replace", false, "delete existing documents before inserting")
	return cmd
}

func parseNbEntries(args []string) (int, error) {
	if len(args) == 0 {
		return defaultNbEntries, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("number of entries must be a positive integer, got %q", args[0])
	}
	return n, nil
}

func (cl *commandline) seedFile(o seedOptions, recs []models.Employee, stdout io.Writer) error {
	f, err := outputFormat(o.format, o.out)
	if err != nil {
		return err
	}
	w, closeFn, err := openOut(o.out, stdout)
	if err != nil {
		return err
	}
	if err := employees.Encode(w, f, recs); err != nil {
		closeFn()
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := closeFn(); err != nil {
		return err
	}
	cl.log.Info("dataset written", zap.String("out", o.out), zap.String("format", string(f)),
		zap.Int("records", len(recs)))
	return nil
}

func outputFormat(flag, out string) (employees.Format, error) {
	if flag != "" {
		return employees.ParseFormat(flag)
	}
	if out == "" || out == "-" {
		return employees.JSON, nil
	}
	return employees.FormatFromPath(out)
}

func (cl *commandline) seedMongo(ctx context.Context, o seedOptions, recs []models.Employee, stdout io.Writer) error {
	if err := wafflemongo.ValidateURI(o.mongo.uri); err != nil {
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Seed(), cl.log, "seed mongo")
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(o.mongo.uri))
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	store := employees.New(client.Database(o.mongo.database), o.mongo.collection)
	var n int
	if o.replace {
		n, err = store.Replace(ctx, recs)
	} else {
		n, err = store.InsertMany(ctx, recs)
	}
	if err != nil {
		return fmt.Errorf("insert employees: %w", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		cl.log.Warn("ensure indexes failed", zap.Error(err))
	}

	cl.log.Info("employees inserted",
		zap.String("database", o.mongo.database),
		zap.String("collection", o.mongo.collection),
		zap.Int("records", n),
		zap.Bool("replace", o.replace))
	fmt.Fprintf(stdout, "OK: %d employees written to %s.%s\n", n, o.mongo.database, o.mongo.collection)
	return nil
}

// openOut opens path for writing, or returns stdout for "-" and "".
func openOut(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}

package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	urfave "github.com/urfave/cli/v2"

	"github.com/sunflower6069/pmpo/pkg/dataset"
	"github.com/sunflower6069/pmpo/pkg/label"
	"github.com/sunflower6069/pmpo/pkg/model"
	"github.com/sunflower6069/pmpo/pkg/stats"
)

var (
	errInputRequired = errors.New("either --file or --db/--dsn with --table is required")

	fileFlag = &urfave.StringFlag{
		Name:  "file",
		Usage: "Path to the input CSV file",
	}

	dbFlag = &urfave.StringFlag{
		Name:  "db",
		Usage: "Path to a Sqlite database file used as input",
	}

	dsnFlag = &urfave.StringFlag{
		Name:  "dsn",
		Usage: "Postgres connection string used as input",
	}

	tableFlag = &urfave.StringFlag{
		Name:  "table",
		Usage: "Database table holding the input rows (required with --db or --dsn)",
	}

	labelFlag = &urfave.StringFlag{
		Name:     "label",
		Usage:    "Name of the good/bad indicator column",
		Required: true,
	}

	goodValueFlag = &urfave.StringFlag{
		Name:  "good-value",
		Usage: "Value marking good rows (optional, defaults to a set of common truthy values)",
	}

	labelAsFlag = &urfave.StringFlag{
		Name:  "label-as",
		Usage: fmt.Sprintf("Name for the derived boolean column (optional, default: %s)", model.LabelColumnDefault),
	}

	nameFlag = &urfave.StringFlag{
		Name:  "name",
		Usage: "Name of the resulting model (optional, default: pMPO)",
		Value: "pMPO",
	}

	minSamplesFlag = &urfave.IntFlag{
		Name:  "min-samples",
		Usage: "Minimum good and bad observations per descriptor",
	}

	pCutoffFlag = &urfave.Float64Flag{
		Name:  "p-cutoff",
		Usage: "P-value cutoff for significant separation",
	}

	qCutoffFlag = &urfave.Float64Flag{
		Name:  "q-cutoff",
		Usage: "Tail probability used to parameterize the fitted functions",
	}

	r2CutoffFlag = &urfave.Float64Flag{
		Name:  "r2-cutoff",
		Usage: "Squared correlation above which descriptors are redundant",
	}

	ignoreFlag = &urfave.StringSliceFlag{
		Name:  "ignore",
		Usage: "Column to exclude from analysis (repeatable)",
	}

	scoreFlag = &urfave.StringFlag{
		Name:  "score",
		Usage: "Optional CSV file of records to score with the freshly trained model",
	}

	idFlag = &urfave.StringFlag{
		Name:  "id",
		Usage: "Column in the --score file used to identify records (optional)",
	}

	trainCmd = &urfave.Command{
		Name:   "train",
		Usage:  "Trains a pMPO model and prints its statistics, correlations, and composition",
		Action: runTrain,
		Flags: []urfave.Flag{
			fileFlag,
			dbFlag,
			dsnFlag,
			tableFlag,
			labelFlag,
			goodValueFlag,
			labelAsFlag,
			nameFlag,
			minSamplesFlag,
			pCutoffFlag,
			qCutoffFlag,
			r2CutoffFlag,
			ignoreFlag,
			scoreFlag,
			idFlag,
		},
	}
)

type recordScore struct {
	ID    string  `json:"id" yaml:"id"`
	Score float64 `json:"score" yaml:"score"`
}

type trainOutput struct {
	Model       string                        `json:"model" yaml:"model"`
	Statistics  []stats.Descriptor            `json:"statistics" yaml:"statistics"`
	Correlation map[string]map[string]float64 `json:"correlation" yaml:"correlation"`
	Scores      []recordScore                 `json:"scores,omitempty" yaml:"scores,omitempty"`
}

func runTrain(c *urfave.Context) error {
	t, err := loadTable(c)
	if err != nil {
		return err
	}

	cfg := buildConfig(c)
	slog.Info("training model", "name", cfg.Name, "rows", t.Len(), "columns", len(t.Columns()))

	b, err := model.NewBuilder(t, cfg)
	if err != nil {
		return fmt.Errorf("building model: %w", err)
	}

	m := b.Model()
	slog.Info("model trained", "descriptors", len(b.Statistics()), "terms", m.Len())

	out := &trainOutput{
		Model:       m.String(),
		Statistics:  b.Statistics(),
		Correlation: sanitize(b.Correlation().Matrix()),
	}

	if path := c.String(scoreFlag.Name); path != "" {
		scores, err := scoreFile(m, path, c.String(idFlag.Name))
		if err != nil {
			return fmt.Errorf("scoring %s: %w", path, err)
		}
		out.Scores = scores
	}

	return encode(out)
}

func loadTable(c *urfave.Context) (*dataset.Table, error) {
	file := c.String(fileFlag.Name)
	dbPath := c.String(dbFlag.Name)
	dsn := c.String(dsnFlag.Name)
	table := c.String(tableFlag.Name)

	switch {
	case file != "":
		return dataset.FromCSVFile(file)
	case dbPath != "" && table != "":
		db, err := dataset.Open(dataset.DriverSQLite, dbPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return dataset.FromDB(db, table)
	case dsn != "" && table != "":
		db, err := dataset.Open(dataset.DriverPostgres, dsn)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return dataset.FromDB(db, table)
	default:
		return nil, errInputRequired
	}
}

func buildConfig(c *urfave.Context) model.Config {
	defaults := getConfig(c)

	cfg := model.Config{
		Name:        c.String(nameFlag.Name),
		LabelColumn: c.String(labelFlag.Name),
		LabelAs:     c.String(labelAsFlag.Name),
		MinSamples:  defaults.MinSamples,
		PCutoff:     defaults.PCutoff,
		QCutoff:     defaults.QCutoff,
		R2Cutoff:    defaults.R2Cutoff,
		Ignore:      c.StringSlice(ignoreFlag.Name),
	}

	if v := c.String(goodValueFlag.Name); v != "" {
		cfg.GoodValue = label.Value(dataset.ParseValue(v))
	}
	if v := c.Int(minSamplesFlag.Name); v > 0 {
		cfg.MinSamples = v
	}
	if v := c.Float64(pCutoffFlag.Name); v > 0 {
		cfg.PCutoff = v
	}
	if v := c.Float64(qCutoffFlag.Name); v > 0 {
		cfg.QCutoff = v
	}
	if v := c.Float64(r2CutoffFlag.Name); v > 0 {
		cfg.R2Cutoff = v
	}

	return cfg
}

// scoreFile evaluates the model against every row of a CSV file.
func scoreFile(m *model.Model, path, idColumn string) ([]recordScore, error) {
	t, err := dataset.FromCSVFile(path)
	if err != nil {
		return nil, err
	}

	cols := make(map[string][]float64)
	for _, name := range t.NumericColumns() {
		values, _ := t.Numeric(name)
		cols[name] = values
	}

	var ids []any
	if idColumn != "" {
		raw, ok := t.Column(idColumn)
		if !ok {
			return nil, fmt.Errorf("id column %s not found", idColumn)
		}
		ids = raw
	}

	scores := make([]recordScore, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		record := make(map[string]float64, len(cols))
		for name, values := range cols {
			record[name] = values[i]
		}

		id := fmt.Sprintf("%d", i+1)
		if ids != nil && ids[i] != nil {
			id = fmt.Sprint(ids[i])
		}
		scores = append(scores, recordScore{ID: id, Score: m.Evaluate(record)})
	}
	return scores, nil
}

// sanitize replaces non-finite matrix entries so the output encoders
// never fail on NaN.
func sanitize(matrix map[string]map[string]float64) map[string]map[string]float64 {
	for _, row := range matrix {
		for k, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				row[k] = 0
			}
		}
	}
	return matrix
}

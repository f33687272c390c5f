package cli

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"example.com/fitlog/internal/analytics"
	"example.com/fitlog/internal/domain"
	"example.com/fitlog/internal/interchange"
	"example.com/fitlog/internal/persistence"
)

// workoutFlags are the raw form fields shared by add and edit.
type workoutFlags struct {
	date     string
	kind     string
	duration string
	calories string
	notes    string
}

func (w *workoutFlags) bind(fs *flag.FlagSet) {
	fs.StringVar(&w.date, "date", "", "YYYY-MM-DD, blank for today")
	fs.StringVar(&w.kind, "type", "", "workout type, see the types command")
	fs.StringVar(&w.duration, "duration", "", "duration in minutes")
	fs.StringVar(&w.calories, "calories", "", "calories burned")
	fs.StringVar(&w.notes, "notes", "", "free text")
}

func runAdd(a *app, args []string) error {
	fs := a.flags("add")
	var creds credentials
	var fields workoutFlags
	creds.bind(fs)
	fields.bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.login(creds)
	if err != nil {
		return err
	}
	input, err := domain.ParseWorkoutInput(fields.date, fields.kind, fields.duration, fields.calories, fields.notes)
	if err != nil {
		return err
	}
	w, err := a.accountService().AppendWorkout(session.Username, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "added %s (created %s)\n", w.ID, w.CreatedAt)
	return nil
}

func runEdit(a *app, args []string) error {
	fs := a.flags("edit")
	var creds credentials
	var fields workoutFlags
	creds.bind(fs)
	fields.bind(fs)
	id := fs.String("id", "", "workout id or created_at")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.login(creds)
	if err != nil {
		return err
	}

	// Only flags given on the command line end up in the patch.
	var patch domain.WorkoutPatch
	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "date":
			patch.Date = &fields.date
		case "type":
			patch.Type = &fields.kind
		case "notes":
			patch.Notes = &fields.notes
		case "duration":
			n, err := domain.ParseCount("duration_min", fields.duration)
			if err != nil {
				parseErr = err
				return
			}
			patch.DurationMin = &n
		case "calories":
			n, err := domain.ParseCount("calories", fields.calories)
			if err != nil {
				parseErr = err
				return
			}
			patch.Calories = &n
		}
	})
	if parseErr != nil {
		return parseErr
	}

	w, err := a.accountService().EditWorkout(session.Username, *id, patch)
	if err != nil {
		return err
	}
	return a.printWorkouts([]domain.Workout{w})
}

func runDelete(a *app, args []string) error {
	fs := a.flags("delete")
	var creds credentials
	creds.bind(fs)
	id := fs.String("id", "", "workout id or created_at")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.login(creds)
	if err != nil {
		return err
	}
	w, err := a.accountService().DeleteWorkout(session.Username, *id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted %s\n", w.ID)
	return nil
}

func runList(a *app, args []string) error {
	fs := a.flags("list")
	var creds credentials
	creds.bind(fs)
	orderName := fs.String("order", "insertion", "insertion, asc or desc")
	if err := fs.Parse(args); err != nil {
		return err
	}

	order, err := domain.ParseOrder(*orderName)
	if err != nil {
		return err
	}
	session, err := a.login(creds)
	if err != nil {
		return err
	}
	workouts, err := a.accountService().SortedWorkouts(session.Username, order)
	if err != nil {
		return err
	}
	if len(workouts) == 0 {
		fmt.Fprintln(a.out, "no workouts")
		return nil
	}
	return a.printWorkouts(workouts)
}

func (a *app) printWorkouts(workouts []domain.Workout) error {
	tw := a.table()
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tMIN\tKCAL\tCREATED\tNOTES")
	for _, w := range workouts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n", w.ID, w.Date, w.Type, w.DurationMin, w.Calories, w.CreatedAt, w.Notes)
	}
	return tw.Flush()
}

func runToday(a *app, args []string) error {
	fs := a.flags("today")
	var creds credentials
	creds.bind(fs)
	date := fs.String("date", "", "YYYY-MM-DD, blank for today")
	if err := fs.Parse(args); err != nil {
		return err
	}

	day, err := a.day(*date)
	if err != nil {
		return err
	}
	session, err := a.login(creds)
	if err != nil {
		return err
	}
	engine := a.engine()
	totals, err := engine.TodayStats(session.Username, day)
	if err != nil {
		return err
	}
	recent, err := engine.RecentActivity(session.Username, day)
	if err != nil {
		return err
	}

	tw := a.table()
	fmt.Fprintf(tw, "date\t%s\n", day.Format(domain.DateLayout))
	fmt.Fprintf(tw, "workouts\t%d\n", totals.Count)
	fmt.Fprintf(tw, "minutes\t%d\n", totals.Minutes)
	fmt.Fprintf(tw, "calories\t%d\n", totals.Calories)
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(recent) == 0 {
		return nil
	}
	fmt.Fprintln(a.out)
	return a.printWorkouts(recent)
}

func runWeekly(a *app, args []string) error {
	fs := a.flags("weekly")
	var creds credentials
	creds.bind(fs)
	date := fs.String("date", "", "last day of the week, blank for today")
	if err := fs.Parse(args); err != nil {
		return err
	}

	day, err := a.day(*date)
	if err != nil {
		return err
	}
	session, err := a.login(creds)
	if err != nil {
		return err
	}
	week, err := a.engine().WeeklyCalories(session.Username, day)
	if err != nil {
		return err
	}

	tw := a.table()
	fmt.Fprintln(tw, "DATE\tDAY\tCALORIES")
	for _, d := range week {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", d.Date, d.Label, d.Calories)
	}
	return tw.Flush()
}

func runSeries(a *app, args []string) error {
	fs := a.flags("series")
	var creds credentials
	creds.bind(fs)
	fieldName := fs.String("field", "calories", "duration or calories")
	if err := fs.Parse(args); err != nil {
		return err
	}

	field, err := analytics.ParseField(*fieldName)
	if err != nil {
		return err
	}
	session, err := a.login(creds)
	if err != nil {
		return err
	}
	series, err := a.engine().ChronologicalSeries(session.Username, field)
	if err != nil {
		return err
	}
	if series.Empty() {
		fmt.Fprintln(a.out, "no data")
		return nil
	}

	tw := a.table()
	fmt.Fprintf(tw, "DATE\t%s\n", strings.ToUpper(string(series.Field)))
	for _, p := range series.Points {
		fmt.Fprintf(tw, "%s\t%d\n", p.Date, p.Value)
	}
	return tw.Flush()
}

// runExport writes the CSV to -out, "-" for standard output, or to the
// default file name in the working directory.
func runExport(a *app, args []string) error {
	fs := a.flags("export")
	var creds credentials
	creds.bind(fs)
	out := fs.String("out", "", "destination file, - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.login(creds)
	if err != nil {
		return err
	}
	if *out == "-" {
		_, err := a.interchange().ExportAccount(a.out, session.Username)
		return err
	}

	path := *out
	if path == "" {
		path = interchange.DefaultFilename(session.Username, a.now())
	}
	var buf bytes.Buffer
	n, err := a.interchange().ExportAccount(&buf, session.Username)
	if err != nil {
		return err
	}
	if err := persistence.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	a.logger.Info().Str("username", session.Username).Str("path", path).Int("rows", n).Msg("exported workouts")
	fmt.Fprintf(a.out, "exported %d workouts to %s\n", n, path)
	return nil
}

func runImport(a *app, args []string) error {
	fs := a.flags("import")
	var creds credentials
	creds.bind(fs)
	in := fs.String("in", "", "source file, - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*in) == "" {
		return &domain.ValidationError{Field: "in", Reason: "is required"}
	}

	session, err := a.login(creds)
	if err != nil {
		return err
	}

	var r io.Reader = a.in
	if *in != "-" {
		f, err := os.Open(*in)
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		r = f
	}

	n, err := a.interchange().ImportAccount(session.Username, r)
	var importErr *domain.ImportError
	if errors.As(err, &importErr) {
		a.logger.Warn().Err(err).Int("row", importErr.Row).Msg("import rejected")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "imported %d workouts\n", n)
	return nil
}

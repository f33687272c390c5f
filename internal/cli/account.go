package cli

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"example.com/fitlog/internal/calendar"
	"example.com/fitlog/internal/domain"
	"example.com/fitlog/internal/settings"
)

func runRegister(a *app, args []string) error {
	fs := a.flags("register")
	var user, password, confirm string
	fs.StringVar(&user, "user", "", "username")
	fs.StringVar(&password, "password", "", "password")
	fs.StringVar(&confirm, "confirm", "", "password again")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.accountService().Register(user, password, confirm); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "registered %s\n", strings.TrimSpace(user))
	return nil
}

func runLogin(a *app, args []string) error {
	fs := a.flags("login")
	var creds credentials
	creds.bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.login(creds)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s\n", session.Username)
	return nil
}

// assignments collects repeated -set key=value flags. Keys may be given as
// form labels ("Weight (kg)") and are stored under their profile key.
type assignments map[string]string

func (p assignments) String() string { return "" }

func (p assignments) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	key = domain.ProfileKey(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	p[key] = value
	return nil
}

func runProfile(a *app, args []string) error {
	fs := a.flags("profile")
	var creds credentials
	creds.bind(fs)
	sets := assignments{}
	fs.Var(sets, "set", "key=value to store (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.login(creds)
	if err != nil {
		return err
	}
	svc := a.accountService()
	profile, err := svc.Profile(session.Username)
	if err != nil {
		return err
	}
	if len(sets) > 0 {
		for k, v := range sets {
			profile[k] = v
		}
		if err := svc.SaveProfile(session.Username, profile); err != nil {
			return err
		}
		if profile, err = svc.Profile(session.Username); err != nil {
			return err
		}
	}

	tw := a.table()
	shown := make(map[string]bool, len(domain.ProfileFields))
	for _, f := range domain.ProfileFields {
		shown[f.Key] = true
		fmt.Fprintf(tw, "%s\t%s\n", f.Label, profile[f.Key])
	}
	for _, k := range sortedKeys(profile) {
		if !shown[k] {
			fmt.Fprintf(tw, "%s\t%s\n", k, profile[k])
		}
	}
	return tw.Flush()
}

func runSettings(a *app, args []string) error {
	fs := a.flags("settings")
	darkMode := fs.Bool("dark-mode", true, "use the dark palette")
	collapsed := fs.Bool("sidebar-collapsed", false, "start with the sidebar collapsed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	store := a.settingsStore()
	current := store.Current()
	if len(set) > 0 {
		next, err := store.UpdateAndPersist(func(s settings.Settings) settings.Settings {
			if set["dark-mode"] {
				s = s.WithDarkMode(*darkMode)
			}
			if set["sidebar-collapsed"] {
				s = s.WithSidebarCollapsed(*collapsed)
			}
			return s
		})
		if err != nil {
			return err
		}
		current = next
	}

	tw := a.table()
	fmt.Fprintf(tw, "%s\t%t\n", settings.KeyDarkMode, current.DarkMode())
	fmt.Fprintf(tw, "%s\t%t\n", settings.KeySidebarCollapsed, current.SidebarCollapsed())
	fmt.Fprintf(tw, "theme\t%s\n", current.Theme())
	return tw.Flush()
}

func runTypes(a *app, args []string) error {
	fs := a.flags("types")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, t := range domain.WorkoutTypes {
		fmt.Fprintln(a.out, t)
	}
	return nil
}

// runCalendar replays a list of picker moves: n (next month), p (previous
// month), t (today), d (done), c (cancel) or a day number to select.
func runCalendar(a *app, args []string) error {
	fs := a.flags("calendar")
	value := fs.String("value", "", "initial field value, YYYY-MM-DD")
	moves := fs.String("moves", "", "comma separated moves")
	if err := fs.Parse(args); err != nil {
		return err
	}

	picker := calendar.New(*value, a.now())
	committed := ""
	for _, move := range strings.Split(*moves, ",") {
		move = strings.TrimSpace(move)
		var err error
		switch move {
		case "":
			continue
		case "n":
			err = picker.NextMonth()
		case "p":
			err = picker.PrevMonth()
		case "t":
			committed, err = picker.JumpToday(a.now())
		case "d":
			committed, err = picker.Done()
		case "c":
			committed, err = picker.Cancel()
		default:
			day, convErr := strconv.Atoi(move)
			if convErr != nil {
				return fmt.Errorf("unknown move %q", move)
			}
			err = picker.SelectDay(day)
		}
		if err != nil {
			return err
		}
	}

	tw := a.table()
	fmt.Fprintf(tw, "month\t%s\n", picker.Title())
	fmt.Fprintf(tw, "selected\t%s\n", picker.SelectedValue())
	if picker.Closed() {
		fmt.Fprintf(tw, "value\t%s\n", committed)
	}
	return tw.Flush()
}

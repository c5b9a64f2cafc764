// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

/*
launchedit is an editor for freedesktop .desktop entry files.
*/
package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/hyperchaotic/launchedit/assets"
	"github.com/hyperchaotic/launchedit/audit"
	"github.com/hyperchaotic/launchedit/config"
	"github.com/hyperchaotic/launchedit/desktop"
	"github.com/hyperchaotic/launchedit/editor"
	"github.com/hyperchaotic/launchedit/i18n"
	"github.com/hyperchaotic/launchedit/icons"
	"github.com/hyperchaotic/launchedit/mimeinfo"
)

// embeddedContent holds the gettext catalogs.
//
//go:embed all:po
var embeddedContent embed.FS

// init assigns the embedded filesystem to the exported assets.FS variable.
//
//nolint:gochecknoinits // this is a good use of init()
func init() {
	assets.FS = embeddedContent
}

var errUsage = errors.New("invalid usage")

// main is the entry point of the application.
func main() {
	if err := run(); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}

		log.Fatal().Err(err).Msg("Command failed")
	}
}

// run loads configuration and i18n, then dispatches to the subcommand.
func run() error {
	audit.SetDefaultLogger()

	if err := config.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := i18n.Setup(); err != nil {
		return fmt.Errorf("failed to initialize i18n engine: %w", err)
	}

	ctx := localeContext(context.Background())

	args := flag.Args()
	if len(args) == 0 {
		usage(ctx)

		return errUsage
	}

	command, rest := args[0], args[1:]

	switch command {
	case "show":
		return cmdShow(ctx, rest)
	case "new":
		return cmdNew(ctx, rest)
	case "set":
		return cmdSet(ctx, rest)
	case "unset":
		return cmdUnset(ctx, rest)
	case "validate":
		return cmdValidate(ctx, rest)
	case "list":
		return cmdList(rest)
	case "locales":
		return cmdLocales()
	case "mime":
		return cmdMime(ctx, rest)
	default:
		usage(ctx)

		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

// localeContext attaches the UI locale to the context: the configured locale
// when set, the locale environment variables otherwise.
func localeContext(ctx context.Context) context.Context {
	if locale := config.Global.Internationalization.Locale; locale != "" {
		if tag, err := language.Parse(locale); err == nil {
			return i18n.WithTag(ctx, tag)
		}

		log.Warn().
			Str("locale", locale).
			Msg("Ignoring unparsable configured locale")
	}

	return i18n.WithEnv(ctx)
}

// entryLocale converts the context's BCP 47 tag to the lang_COUNTRY form
// desktop entry keys are localized with.
func entryLocale(ctx context.Context) string {
	return strings.ReplaceAll(i18n.TagFrom(ctx).String(), "-", "_")
}

func usage(ctx context.Context) {
	fmt.Fprintf(os.Stderr, "%s\n\n", i18n.Tr(ctx, "app-title"))
	fmt.Fprintln(os.Stderr, "usage: launchedit [flags] <command> [arguments]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  show <file>                      print a desktop entry")
	fmt.Fprintln(os.Stderr, "  new -type <t> [-name <n>]        create a desktop entry")
	fmt.Fprintln(os.Stderr, "  set <file> <key> <value>         set a key")
	fmt.Fprintln(os.Stderr, "  unset <file> <key>               remove a key")
	fmt.Fprintln(os.Stderr, "  validate <file>...               check desktop files")
	fmt.Fprintln(os.Stderr, "  list                             list installed desktop entries")
	fmt.Fprintln(os.Stderr, "  locales                          list available UI locales")
	fmt.Fprintln(os.Stderr, "  mime <file> [-add|-remove <mt>]  edit supported MIME types")
	flag.PrintDefaults()
}

// cmdShow prints the desktop entry, localized for the active locale.
func cmdShow(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("show", flag.ContinueOnError)
	resolveIcons := flags.Bool("resolve-icons", false, "resolve the icon name to a file path")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	session, err := openSession(ctx, flags.Arg(0))
	if err != nil {
		return err
	}

	entry := session.Entry
	locale := entryLocale(ctx)

	fmt.Printf("%s\n\n", session.Path)

	printField(ctx, "field-name", entry.Name.ToLocale(locale))
	printField(ctx, "field-genericname", entry.GenericName.ToLocale(locale))
	printField(ctx, "field-comment", entry.Comment.ToLocale(locale))

	switch entry.Type {
	case desktop.TypeLink:
		printField(ctx, "field-url", entry.URL)
	default:
		printField(ctx, "field-command", entry.Exec.String())
		printField(ctx, "field-tryexec", entry.TryExec)
		printField(ctx, "field-workpath", entry.Path)
	}

	icon := entry.Icon.ToLocale(locale)
	if *resolveIcons && icon != "" {
		cache := icons.NewCache(ctx, config.Global.Icons.Themes)
		if path, ok := cache.Lookup(icon); ok {
			icon = fmt.Sprintf("%s (%s)", icon, path)
		}
	}

	printField(ctx, "field-icon", icon)
	printField(ctx, "field-categories", strings.Join(entry.Categories, ";"))
	printField(ctx, "field-keywords", strings.Join(entry.Keywords.ToLocale(locale), ";"))

	printBoolField(ctx, "field-runinterm", entry.Terminal)
	printBoolField(ctx, "field-hide", entry.NoDisplay)
	printBoolField(ctx, "field-hidden", entry.Hidden)

	printAdvanced(ctx, entry)

	if len(entry.MimeType) > 0 {
		fmt.Printf("\n%s:\n", i18n.Tr(ctx, "nav-mimetypes"))

		for _, mimeType := range entry.MimeType {
			fmt.Printf("  %s\n", mimeType)
		}
	}

	if len(entry.Actions) > 0 {
		fmt.Printf("\n%s:\n", i18n.Tr(ctx, "nav-actions"))

		for _, action := range entry.Actions {
			fmt.Printf("  %s: %s (%s)\n", action.ID, action.Name.ToLocale(locale), action.Exec.String())
		}
	}

	return nil
}

// printAdvanced prints the keys of the advanced tab, skipping unset ones.
func printAdvanced(ctx context.Context, entry *desktop.Entry) {
	fmt.Printf("\n%s:\n", i18n.Tr(ctx, "nav-advanced"))

	printField(ctx, "field-onlyshownin", strings.Join(entry.OnlyShowIn, ";"))
	printField(ctx, "field-notshownin", strings.Join(entry.NotShowIn, ";"))
	printField(ctx, "field-implements", strings.Join(entry.Implements, ";"))
	printField(ctx, "field-startupwmclass", entry.StartupWMClass)
	printBoolField(ctx, "field-dbusactivation", entry.DBusActivatable)
	printBoolField(ctx, "field-nondefaultgpu", entry.PrefersNonDefaultGPU)
	printBoolField(ctx, "field-singlemainwindow", entry.SingleMainWindow)

	if entry.StartupNotify != desktop.StartupNotifyUnset {
		printBoolField(ctx, "field-startupnotify", entry.StartupNotify == desktop.StartupNotifyTrue)
	}
}

func printField(ctx context.Context, key i18n.MsgKey, value string) {
	if value == "" {
		return
	}

	fmt.Printf("%-24s %s\n", key.Tr(ctx)+":", value)
}

func printBoolField(ctx context.Context, key i18n.MsgKey, value bool) {
	if !value {
		return
	}

	fmt.Printf("%-24s true\n", key.Tr(ctx)+":")
}

// cmdNew creates a desktop entry and saves it under the configured save
// directory, or the path given with -out.
func cmdNew(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("new", flag.ContinueOnError)
	entryType := flags.String("type", desktop.TypeApplication, "entry type: Application, Link or Directory")
	name := flags.String("name", "", "entry name; localized default when empty")
	url := flags.String("url", "", "URL, required for Link entries")
	exec := flags.String("exec", "", "command to execute")
	out := flags.String("out", "", "output path; derived from the name when empty")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	if *name == "" {
		switch *entryType {
		case desktop.TypeLink:
			*name = i18n.Tr(ctx, "my-link")
		case desktop.TypeDirectory:
			*name = i18n.Tr(ctx, "my-directory")
		default:
			*name = i18n.Tr(ctx, "my-application")
		}
	}

	session, err := editor.New(*entryType, *name, *url)
	if err != nil {
		return err
	}

	if *exec != "" {
		if err := session.SetString("Exec", *exec); err != nil {
			return err
		}
	}

	path := *out
	if path == "" {
		path = filepath.Join(config.Global.Editor.SaveDir, session.SuggestFileName(ctx))

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return saveError(ctx, err)
		}
	}

	if err := saveSession(ctx, session, path); err != nil {
		return err
	}

	fmt.Println(session.Path)

	return nil
}

// cmdSet sets one key on the main group of a desktop file.
func cmdSet(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("set", flag.ContinueOnError)
	locale := flags.String("locale", "", "set the locale variant of the key, e.g. da or pt_BR")
	asBool := flags.Bool("bool", false, "treat the value as a boolean")
	asList := flags.Bool("list", false, "treat the value as a comma-separated list")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	if flags.NArg() != 3 {
		return fmt.Errorf("%w: set <file> <key> <value>", errUsage)
	}

	session, err := openSession(ctx, flags.Arg(0))
	if err != nil {
		return err
	}

	key, value := flags.Arg(1), flags.Arg(2)

	switch {
	case *locale != "":
		err = session.SetLocalizedString(key, *locale, value)
	case *asBool:
		err = session.SetBool(key, value == "true")
	case *asList:
		err = session.SetList(key, strings.Split(value, ","))
	default:
		err = session.SetString(key, value)
	}

	if err != nil {
		return err
	}

	return saveSession(ctx, session, session.Path)
}

// cmdUnset removes a key, including its locale variants, from a desktop file.
func cmdUnset(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: unset <file> <key>", errUsage)
	}

	session, err := openSession(ctx, args[0])
	if err != nil {
		return err
	}

	if err := session.Unset(args[1]); err != nil {
		return err
	}

	if !session.Modified {
		return nil
	}

	return saveSession(ctx, session, session.Path)
}

// cmdValidate checks desktop files concurrently and prints each problem.
func cmdValidate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: validate <file>...", errUsage)
	}

	group, ctx := errgroup.WithContext(ctx)
	results := make([][]string, len(args))

	for i, path := range args {
		i, path := i, path

		group.Go(func() error {
			doc, err := desktop.ParseFile(path)
			if err != nil {
				results[i] = []string{fmt.Sprintf("%s: %s: %v",
					path, i18n.Tr(ctx, "error-parsingentry"), err)}

				return nil
			}

			for _, problem := range desktop.Validate(doc) {
				results[i] = append(results[i], fmt.Sprintf("%s: %s", path, problem))
			}

			if _, err := desktop.Decode(doc); err != nil {
				results[i] = append(results[i], fmt.Sprintf("%s: %s: %v",
					path, i18n.Tr(ctx, "error-parsingentry"), err))
			}

			return nil
		})
	}

	_ = group.Wait()

	failed := false

	for _, problems := range results {
		for _, problem := range problems {
			failed = true

			fmt.Fprintln(os.Stderr, problem)
		}
	}

	if failed {
		return errors.New("validation failed")
	}

	return nil
}

// cmdList prints the installed desktop entries by desktop-file id.
func cmdList(args []string) error {
	flags := flag.NewFlagSet("list", flag.ContinueOnError)
	showPaths := flags.Bool("paths", false, "print the file path of each entry")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	idPaths, err := desktop.GetDesktopFiles(desktop.GetDirs())
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(idPaths))
	for id := range idPaths {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	for _, id := range ids {
		if *showPaths {
			fmt.Printf("%s\t%s\n", id, idPaths[id][0])
		} else {
			fmt.Println(id)
		}
	}

	return nil
}

// cmdLocales prints the locales the UI can be displayed in.
func cmdLocales() error {
	for _, tag := range i18n.Languages() {
		fmt.Println(tag)
	}

	return nil
}

// cmdMime shows or edits the MIME types of a desktop entry. Descriptions
// come from the shared-mime-info database, localized for the active locale.
func cmdMime(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("mime", flag.ContinueOnError)
	add := flags.String("add", "", "add a MIME type to the entry")
	remove := flags.String("remove", "", "remove a MIME type from the entry")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	session, err := openSession(ctx, flags.Arg(0))
	if err != nil {
		return err
	}

	if *add != "" || *remove != "" {
		if *add != "" {
			if err := session.AddMimeType(*add); err != nil {
				return err
			}
		}

		if *remove != "" {
			if err := session.RemoveMimeType(*remove); err != nil {
				return err
			}
		}

		return saveSession(ctx, session, session.Path)
	}

	cache := mimeinfo.NewCache(ctx, []language.Tag{i18n.TagFrom(ctx)})

	fmt.Printf("%s:\n", i18n.Tr(ctx, "nav-mimetypes"))

	for _, mimeType := range session.Entry.MimeType {
		description, _ := cache.Lookup(mimeType)
		fmt.Printf("  %-40s %s\n", mimeType, description)
	}

	return nil
}

// openSession opens the desktop file given as a command argument.
func openSession(ctx context.Context, path string) (*editor.Session, error) {
	session, err := editor.Open(path)
	if err != nil {
		if errors.Is(err, editor.ErrMissingArgument) || errors.Is(err, editor.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %w", errUsage, err)
		}

		return nil, fmt.Errorf("%w: %w", i18n.NewUserError(ctx, "error-parsingentry"), err)
	}

	return session, nil
}

// saveSession saves to path, printing the permission hint when writing to a
// system location fails.
func saveSession(ctx context.Context, session *editor.Session, path string) error {
	if err := session.SaveTo(path); err != nil {
		return saveError(ctx, err)
	}

	return nil
}

func saveError(ctx context.Context, err error) error {
	if editor.IsPermissionDenied(err) {
		fmt.Fprintln(os.Stderr, i18n.Tr(ctx, "context-denied"))
		fmt.Fprintln(os.Stderr, i18n.Tr(ctx, "context-denied-expl"))
	}

	return fmt.Errorf("%w: %w", i18n.NewUserError(ctx, "context-unabletosave"), err)
}

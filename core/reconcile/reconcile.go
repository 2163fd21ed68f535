package reconcile

import (
	"context"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"scouting-hub/core/roster"
	"scouting-hub/core/storage"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	placeholderGiven    = "Jugador"
	placeholderSurnames = "Sin Datos"
)

// Reconcile turns discovered image assets into players. Each image is matched
// against the unused records (see Matcher); unmatched images become
// placeholders. Pdf assets are not players: a pdf sharing an image's base name
// becomes that player's ReportPath. Output is sorted by jersey number.
func Reconcile(ctx context.Context, assets []Asset, records []roster.Record, opts Options) []Player {
	reports := make(map[string]string)
	var images []Asset
	for _, a := range assets {
		kind, ok := storage.KindOf(a.Name)
		if !ok {
			continue
		}
		switch kind {
		case storage.KindPDF:
			reports[fileSlug(a.Name)] = a.Path
		case storage.KindImage:
			images = append(images, a)
		}
	}

	matcher := NewMatcher(records)
	slugs := make(map[string]bool, len(images))
	players := make([]Player, 0, len(images))

	for _, a := range images {
		var p Player
		if rec, ok := matcher.Claim(AssetKey(a.Name)); ok {
			p = fromRecord(rec)
			p.ImageURL = validate(ctx, opts.Images, rec.ImageURL)
		} else {
			p = Placeholder(a.Name)
		}

		base := fileSlug(a.Name)
		p.Slug = uniqueSlug(base, a.Name, slugs)
		p.ImageFile = a.Name
		p.ImagePath = a.Path
		p.ReportPath = reports[base]
		if opts.Team != "" {
			p.Team = opts.Team
		}
		players = append(players, p)
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Jersey < players[j].Jersey
	})
	return players
}

// Placeholder builds a player for an image no roster row claims:
// "unknown_player.png" becomes given name "Player", surnames "Unknown".
func Placeholder(fileName string) Player {
	words := strings.Fields(cases.Title(language.Und).String(strings.ReplaceAll(baseName(fileName), "_", " ")))

	p := Player{
		Given:       placeholderGiven,
		Surnames:    placeholderSurnames,
		FullName:    strings.Join(words, " "),
		RecordIndex: -1,
	}
	if len(words) > 0 {
		p.Given = words[len(words)-1]
	}
	if len(words) > 1 {
		p.Surnames = strings.Join(words[:len(words)-1], " ")
	}
	return p
}

// fileSlug is the slug of a file name before collision handling.
func fileSlug(fileName string) string {
	return strings.ToLower(baseName(fileName))
}

func uniqueSlug(base, fileName string, taken map[string]bool) string {
	slug := base
	if taken[slug] {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
		slug = base + "_" + ext
		for i := 2; taken[slug]; i++ {
			slug = base + "_" + ext + "_" + strconv.Itoa(i)
		}
	}
	taken[slug] = true
	return slug
}

func validate(ctx context.Context, v URLValidator, rawURL string) string {
	if v == nil || strings.TrimSpace(rawURL) == "" {
		return ""
	}
	return v.SafeURL(ctx, rawURL)
}

func baseName(fileName string) string {
	name := filepath.Base(fileName)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

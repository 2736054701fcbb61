package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/teamfinder/internal/client/models"
)

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func joinSkills(skills []string) string {
	if len(skills) == 0 {
		return "-"
	}
	return strings.Join(skills, ", ")
}

func describeFilter(f models.PostFilter) string {
	parts := []string{"type=" + f.Type.Label()}
	if len(f.Skills) > 0 {
		parts = append(parts, "skills="+strings.Join(f.Skills, ","))
	}
	if f.Sort != "" {
		parts = append(parts, "sort="+f.Sort)
	}
	return strings.Join(parts, " ")
}

// renderPostList writes one page of posts followed by the pagination line.
func renderPostList(w io.Writer, title string, f models.PostFilter, page *models.PostPage) error {
	fmt.Fprintf(w, "== %s ==\n", title)
	fmt.Fprintf(w, "Filter: %s\n", describeFilter(f))

	if page == nil || len(page.Posts) == 0 {
		_, err := fmt.Fprintln(w, "No posts found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range page.Posts {
		fmt.Fprintf(tw, "#%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Type.Label(), joinSkills(p.Skills))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	m := page.Metadata
	line := fmt.Sprintf("Page %d of %d (%d posts)", m.CurrentPage, m.TotalPages(), m.TotalRecords)
	var nav []string
	if m.HasPrev() {
		nav = append(nav, "prev")
	}
	if m.HasNext() {
		nav = append(nav, "next")
	}
	if len(nav) > 0 {
		line += "  [" + strings.Join(nav, "|") + "]"
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// renderPost writes a single post with the command that opens its author.
func renderPost(w io.Writer, p *models.Post) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "== #%d %s ==\n", p.ID, p.Name)
	fmt.Fprintf(tw, "Type:\t%s\n", p.Type.Label())
	fmt.Fprintf(tw, "Skills:\t%s\n", joinSkills(p.Skills))
	fmt.Fprintf(tw, "Posted:\t%s\n", formatDate(p.CreatedAt))
	fmt.Fprintf(tw, "Author:\tgo /users/%d\n", p.AuthorID)
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", orDash(p.Description))
	return err
}

// renderUser writes a profile.
func renderUser(w io.Writer, u *models.User) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "== %s (@%s) ==\n", u.DisplayName(), u.Username)
	if u.Email != "" {
		fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	}
	fmt.Fprintf(tw, "Telegram:\t%s\n", orDash(u.Telegram))
	fmt.Fprintf(tw, "Discord:\t%s\n", orDash(u.Discord))
	fmt.Fprintf(tw, "Skills:\t%s\n", joinSkills(u.Skills))
	if u.ProfileImage != "" {
		fmt.Fprintf(tw, "Image:\t%s\n", u.ProfileImage)
	}
	fmt.Fprintf(tw, "Member since:\t%s\n", formatDate(u.CreatedAt))
	return tw.Flush()
}

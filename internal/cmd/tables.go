package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/format"
	"github.com/krcglobal/gbms/internal/ux"
)

func projectTable(projects []api.Project) *ux.Table {
	t := ux.NewTable("ID", "CODE", "TITLE", "TYPE", "COUNTRY", "STATUS", "BUDGET", "PROGRESS")
	for _, p := range projects {
		t.Append(
			strconv.Itoa(p.ID),
			p.Code,
			p.Title,
			format.ProjectTypeLabel(p.ProjectType),
			p.Country,
			format.StatusBadge(p.Status).Label,
			format.LargeCurrency(p.BudgetTotal),
			fmt.Sprintf("%d%%", p.Progress),
		)
	}
	return t
}

func projectDetail(p api.Project) *ux.Table {
	t := ux.NewTable("FIELD", "VALUE")
	t.Append("id", strconv.Itoa(p.ID))
	t.Append("code", p.Code)
	t.Append("title", p.Title)
	if p.TitleEn != "" {
		t.Append("title (en)", p.TitleEn)
	}
	t.Append("type", format.ProjectTypeLabel(p.ProjectType))
	t.Append("country", p.Country)
	t.Append("department", format.DepartmentLabel(p.Department))
	t.Append("period", p.StartDate+" ~ "+p.EndDate)
	t.Append("budget", format.Currency(p.BudgetTotal))
	t.Append("status", format.StatusBadge(p.Status).Label)
	t.Append("progress", fmt.Sprintf("%d%%", p.Progress))
	if p.Client != "" {
		t.Append("client", p.Client)
	}
	if p.Description != "" {
		t.Append("description", p.Description)
	}
	return t
}

func budgetTable(budgets []api.Budget) *ux.Table {
	t := ux.NewTable("ID", "PROJECT", "YEAR", "CATEGORY", "PLANNED", "EXECUTED", "REMAINING", "RATE")
	for _, b := range budgets {
		t.Append(
			strconv.Itoa(b.ID),
			strconv.Itoa(b.ProjectID),
			strconv.Itoa(b.Year),
			b.Category,
			format.Currency(b.AmountPlanned),
			format.Currency(b.AmountExecuted),
			format.Currency(b.AmountRemaining),
			fmt.Sprintf("%.1f%%", b.ExecutionRate),
		)
	}
	return t
}

func budgetStatsTable(s api.BudgetStats) *ux.Table {
	t := ux.NewTable("SLICE", "PLANNED", "EXECUTED", "RATE")
	t.Append(fmt.Sprintf("%d 전체", s.Year), format.LargeCurrency(s.TotalPlanned), format.LargeCurrency(s.TotalExecuted), fmt.Sprintf("%.1f%%", s.ExecutionRate))
	for _, d := range s.ByDepartment {
		t.Append(format.DepartmentLabel(d.Department), format.LargeCurrency(d.Planned), format.LargeCurrency(d.Executed), fmt.Sprintf("%.1f%%", d.Rate))
	}
	for _, c := range s.ByCategory {
		t.Append(c.Category, format.LargeCurrency(c.Planned), format.LargeCurrency(c.Executed), fmt.Sprintf("%.1f%%", c.Rate))
	}
	return t
}

func documentTable(docs []api.Document) *ux.Table {
	t := ux.NewTable("ID", "TITLE", "TYPE", "FILE", "SIZE", "CREATED")
	for _, d := range docs {
		t.Append(
			strconv.Itoa(d.ID),
			d.Title,
			d.DocType,
			d.FileName,
			format.FileSize(d.FileSize),
			shortDate(d.CreatedAt),
		)
	}
	return t
}

func officeTable(offices []api.Office) *ux.Table {
	t := ux.NewTable("ID", "NAME", "COUNTRY", "CITY", "TYPE", "STATUS", "CONTACT")
	for _, o := range offices {
		t.Append(strconv.Itoa(o.ID), o.Name, o.Country, o.City, o.OfficeType, o.Status, o.ContactPerson)
	}
	return t
}

func userTable(users []api.User) *ux.Table {
	t := ux.NewTable("ID", "USER ID", "NAME", "DEPARTMENT", "ROLE", "EMAIL")
	for _, u := range users {
		dept := u.DepartmentName
		if dept == "" {
			dept = format.DepartmentLabel(u.Department)
		}
		t.Append(strconv.Itoa(u.ID), u.UserID, u.Name, dept, u.Role, u.Email)
	}
	return t
}

func eventTable(events []api.Event) *ux.Table {
	t := ux.NewTable("DATE", "TYPE", "TITLE", "DEPARTMENT")
	for _, e := range events {
		t.Append(e.Date, e.Type, e.Title, format.DepartmentLabel(e.Department))
	}
	return t
}

func activityTable(entries []api.Activity) *ux.Table {
	t := ux.NewTable("TIME", "USER", "ACTION", "DESCRIPTION")
	for _, a := range entries {
		t.Append(a.CreatedAt, a.UserName, a.Action, a.Description)
	}
	return t
}

// countTable renders a label to count map sorted by label.
func countTable(header string, counts map[string]int, label func(string) string) *ux.Table {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := ux.NewTable(header, "COUNT")
	for _, k := range keys {
		name := k
		if label != nil {
			name = label(k)
		}
		t.Append(name, strconv.Itoa(counts[k]))
	}
	return t
}

func shortDate(s string) string {
	if s == "" {
		return ""
	}
	d, err := format.ParseDate(s)
	if err != nil {
		return s
	}
	return format.Date(d, format.StyleShort)
}

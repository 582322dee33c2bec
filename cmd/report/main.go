package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"example.com/engagement-analytics/internal/config"
	"example.com/engagement-analytics/internal/domain"
	spg "example.com/engagement-analytics/internal/storage/postgres"
)

// report prints a terminal summary of the persisted dataset: overall totals,
// category performance, top engagement hours, and the category ranking.

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "report failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	cfg, err := config.Parse()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := spg.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer db.Close()

	if err := printTotals(ctx, db); err != nil {
		return err
	}
	if err := printCategoryPerformance(ctx, db); err != nil {
		return err
	}
	if err := printTopHours(ctx, db); err != nil {
		return err
	}
	return printCategoryRanking(ctx, db)
}

func section(title string) {
	fmt.Println()
	color.Bold.Println("=== " + title + " ===")
}

func newTable() *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func printTotals(ctx context.Context, db *spg.DB) error {
	t, err := db.DatasetTotals(ctx)
	if err != nil {
		return err
	}

	section("ENGAGEMENT ANALYTICS SUMMARY")
	fmt.Printf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	table := newTable()
	table.Append([]string{"Total Authors", strconv.FormatInt(t.Authors, 10)})
	table.Append([]string{"Total Posts", strconv.FormatInt(t.Posts, 10)})
	table.Append([]string{"Total Users", strconv.FormatInt(t.Users, 10)})
	table.Append([]string{"Total Engagements", strconv.FormatInt(t.Engagements, 10)})
	table.Append([]string{"Avg Engagement/Post", fmt.Sprintf("%.2f", t.AvgEngagement)})
	table.Append([]string{"Date Range", t.FirstPublish.Format("2006-01-02") + " to " + t.LastPublish.Format("2006-01-02")})
	table.Render()
	return nil
}

func printCategoryPerformance(ctx context.Context, db *spg.DB) error {
	rows, err := db.CategoryPerformance(ctx)
	if err != nil {
		return err
	}

	section("CATEGORY PERFORMANCE")
	table := newTable()
	table.SetHeader([]string{"Category", "Posts", "Engagement", "Avg", "Avg Views", "Rate %"})
	for _, c := range rows {
		table.Append([]string{
			c.Category,
			strconv.FormatInt(c.TotalPosts, 10),
			strconv.FormatInt(c.TotalEngagement, 10),
			fmt.Sprintf("%.2f", c.AvgEngagement),
			fmt.Sprintf("%.2f", c.AvgViews),
			fmt.Sprintf("%.2f", c.EngagementRate),
		})
	}
	table.Render()
	return nil
}

func printTopHours(ctx context.Context, db *spg.DB) error {
	rows, err := db.EngagementByHour(ctx)
	if err != nil {
		return err
	}
	if len(rows) > 5 {
		rows = rows[:5]
	}

	section("TOP 5 ENGAGEMENT HOURS")
	table := newTable()
	table.SetHeader([]string{"Hour", "Engagements"})
	for _, h := range rows {
		table.Append([]string{fmt.Sprintf("%02d:00", h.Hour), strconv.FormatInt(h.Count, 10)})
	}
	table.Render()
	return nil
}

func printCategoryRanking(ctx context.Context, db *spg.DB) error {
	rows, err := db.TopCategories(ctx, domain.MetricEngagement, 10)
	if err != nil {
		return err
	}

	section("CATEGORY RANKING (BY ENGAGEMENT)")
	table := newTable()
	table.SetHeader([]string{"Rank", "Category", "Engagement", "Posts", "Top Author"})
	for _, r := range rows {
		table.Append([]string{
			strconv.FormatInt(r.Rank, 10),
			r.Category,
			strconv.FormatInt(r.TotalEngaged, 10),
			strconv.FormatInt(r.TotalPosts, 10),
			r.TopAuthor,
		})
	}
	table.Render()
	return nil
}

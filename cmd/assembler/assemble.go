package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"course_assembler/internal/app"
	"course_assembler/internal/domain"
)

func newAssembleCommand(cc *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "assemble <course-id>",
		Short: "Assemble one course now and print the resulting lessons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID := args[0]
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			a, err := app.New(ctx, cc.cfg, cc.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			job, runErr := a.AssembleNow(ctx, courseID, force)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "job %s: %s (%d%%)\n", job.ID, job.Status, job.Progress.Percent)
			if runErr != nil {
				return runErr
			}

			course, err := a.Courses.GetCourse(ctx, courseID)
			if err != nil {
				return err
			}
			printRoadmap(out, course.Roadmap)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Re-evaluate lessons that already have a video")
	return cmd
}

func printRoadmap(w io.Writer, roadmap *domain.Roadmap) {
	if roadmap == nil {
		fmt.Fprintln(w, "no roadmap")
		return
	}
	fmt.Fprintln(w, renderTable(roadmapHeaders, roadmapRows(roadmap), roadmapAligns))
}

var (
	roadmapHeaders = []string{"#", "Module", "Lesson", "Type", "Video", "Segment", "Score", "Note"}
	roadmapAligns  = []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}
)

func roadmapRows(roadmap *domain.Roadmap) [][]string {
	var rows [][]string
	for _, m := range roadmap.Modules {
		for _, l := range m.Lessons {
			note := l.Note
			if l.Error != "" {
				note = "error: " + l.Error
			}
			rows = append(rows, []string{
				strconv.Itoa(len(rows) + 1),
				m.Title,
				l.Title,
				string(l.Type),
				l.VideoID,
				segment(l.StartTime, l.EndTime),
				score(l.Score),
				note,
			})
		}
	}
	return rows
}

func segment(start, end *float64) string {
	if start == nil || end == nil {
		return ""
	}
	return formatSeconds(*start) + "-" + formatSeconds(*end)
}

func formatSeconds(v float64) string {
	s := int(v)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func score(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

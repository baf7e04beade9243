package outingservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	outingdomain "github.com/fairway-social/outing-engine/app/modules/outing/domain"
	"github.com/fairway-social/outing-engine/internal/observability/attr"
)

const exportSheetName = "Leaderboard"

// ExportLeaderboard renders the current standings as an XLSX workbook.
func (s *OutingService) ExportLeaderboard(ctx context.Context, outingID uuid.UUID, formatID string) ([]byte, error) {
	format, entries, err := s.buildEntries(ctx, outingID, formatID)
	if err != nil {
		return nil, fmt.Errorf("export_leaderboard: %w", err)
	}

	data, err := renderLeaderboardXLSX(format, entries)
	if err != nil {
		return nil, fmt.Errorf("export_leaderboard: %w", err)
	}

	s.logger.InfoContext(ctx, "Leaderboard exported",
		attr.UUIDValue("outing_id", outingID),
		attr.String("format", string(format)),
		attr.Int("entries", len(entries)),
		attr.ExtractCorrelationID(ctx),
	)
	return data, nil
}

func renderLeaderboardXLSX(format outingdomain.ScoringFormat, entries []outingdomain.LeaderboardEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	header := []any{"Pos", "Player", "Group", "Gross", "Net", "To Par", "Thru"}
	if format == outingdomain.FormatStableford {
		header = append(header, "Points")
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, e := range entries {
		row := []any{e.Position, e.DisplayName, e.GroupName, e.GrossScore, e.NetScore, e.ScoreToPar, e.Thru}
		if format == outingdomain.FormatStableford {
			row = append(row, e.FormatScore)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell: %w", err)
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

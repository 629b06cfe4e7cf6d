package response

import (
	"time"

	"lodgestay/internal/usecase/queries"
)

type ChannelOccupancyResponse struct {
	ManualRoomDays int     `json:"manualRoomDays"`
	OnlineRoomDays int     `json:"onlineRoomDays"`
	ManualRatePct  float64 `json:"manualRatePct"`
	OnlineRatePct  float64 `json:"onlineRatePct"`
}

type MonthOccupancyResponse struct {
	Month                 string                   `json:"month"`
	OccupiedRoomDays      int                      `json:"occupiedRoomDays"`
	TotalPossibleRoomDays int                      `json:"totalPossibleRoomDays"`
	RatePct               float64                  `json:"ratePct"`
	Channels              ChannelOccupancyResponse `json:"channels"`
}

type OccupancyReportResponse struct {
	LodgeID     string                   `json:"lodgeId"`
	From        string                   `json:"from"`
	To          string                   `json:"to"`
	TotalRooms  int                      `json:"totalRooms"`
	Months      []MonthOccupancyResponse `json:"months"`
	GeneratedAt time.Time                `json:"generatedAt"`
}

func FromOccupancyReport(report *queries.OccupancyReport) *OccupancyReportResponse {
	resp := &OccupancyReportResponse{
		LodgeID:     report.LodgeID.String(),
		From:        report.From.Format("2006-01-02"),
		To:          report.To.Format("2006-01-02"),
		TotalRooms:  report.TotalRooms,
		Months:      make([]MonthOccupancyResponse, len(report.Months)),
		GeneratedAt: report.GeneratedAt,
	}
	for i, m := range report.Months {
		resp.Months[i] = MonthOccupancyResponse{
			Month:                 m.Month,
			OccupiedRoomDays:      m.OccupiedRoomDays,
			TotalPossibleRoomDays: m.TotalPossibleRoomDays,
			RatePct:               m.RatePct,
			Channels: ChannelOccupancyResponse{
				ManualRoomDays: m.Channels.ManualRoomDays,
				OnlineRoomDays: m.Channels.OnlineRoomDays,
				ManualRatePct:  m.Channels.ManualRatePct,
				OnlineRatePct:  m.Channels.OnlineRatePct,
			},
		}
	}
	return resp
}

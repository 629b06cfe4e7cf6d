//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"lodgestay/internal/handler/api"
	resdto "lodgestay/internal/handler/dto/response"
	"lodgestay/internal/usecase/queries"
	"lodgestay/tests/common/httptest"
	queriesmock "lodgestay/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OccupancyHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockOccupancyQueries
	handler     *api.OccupancyHandler
}

func (s *OccupancyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockOccupancyQueries(s.mockCtrl)
	s.handler = api.NewOccupancyHandler(s.mockQueries)

	s.router.GET("/lodges/:id/occupancy", s.handler.MonthlyReport)
}

func (s *OccupancyHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOccupancyHandlerSuite(t *testing.T) {
	suite.Run(t, new(OccupancyHandlerTestSuite))
}

func (s *OccupancyHandlerTestSuite) TestMonthlyReport() {
	lodgeID := uuid.New()
	url := "/lodges/" + lodgeID.String() + "/occupancy"
	query := "?from=2026-06-01&to=2026-08-01"

	report := &queries.OccupancyReport{
		LodgeID:    lodgeID,
		From:       time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		TotalRooms: 3,
		Months: []queries.MonthOccupancy{
			{
				Month:                 "2026-06",
				OccupiedRoomDays:      45,
				TotalPossibleRoomDays: 90,
				RatePct:               50,
				Channels: queries.ChannelOccupancy{
					ManualRoomDays: 10,
					OnlineRoomDays: 35,
					ManualRatePct:  11.11,
					OnlineRatePct:  38.89,
				},
			},
			{
				Month:                 "2026-07",
				OccupiedRoomDays:      0,
				TotalPossibleRoomDays: 93,
			},
		},
		GeneratedAt: time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
	}

	s.Run("success: returns 200 OK with per-month breakdown", func() {
		s.mockQueries.EXPECT().MonthlyReport(gomock.Any(), lodgeID, gomock.Any(), gomock.Any(), false).
			Return(report, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+query, nil, "staff-token")

		var response resdto.OccupancyReportResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(lodgeID.String(), response.LodgeID)
		s.Equal("2026-06-01", response.From)
		s.Equal("2026-08-01", response.To)
		s.Equal(3, response.TotalRooms)
		s.Len(response.Months, 2)
		s.Equal("2026-06", response.Months[0].Month)
		s.Equal(45, response.Months[0].OccupiedRoomDays)
		s.Equal(10, response.Months[0].Channels.ManualRoomDays)
	})

	s.Run("success: force_refresh is forwarded", func() {
		s.mockQueries.EXPECT().MonthlyReport(gomock.Any(), lodgeID, gomock.Any(), gomock.Any(), true).
			Return(report, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+query+"&force_refresh=true", nil, "staff-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for invalid lodge UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/lodges/nope/occupancy"+query, nil, "staff-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 400 Bad Request when dates are missing or malformed", func() {
		for _, q := range []string{"", "?from=2026-06-01", "?from=June&to=July"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+q, nil, "staff-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "YYYY-MM-DD")
		}
	})

	s.Run("error: 400 Bad Request for an inverted range", func() {
		s.mockQueries.EXPECT().MonthlyReport(gomock.Any(), lodgeID, gomock.Any(), gomock.Any(), false).
			Return(nil, queries.ErrInvalidDateRange).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?from=2026-08-01&to=2026-06-01", nil, "staff-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "to must be after from")
	})

	s.Run("error: 500 on unclassified failures", func() {
		s.mockQueries.EXPECT().MonthlyReport(gomock.Any(), lodgeID, gomock.Any(), gomock.Any(), false).
			Return(nil, errors.New("connection reset")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+query, nil, "staff-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

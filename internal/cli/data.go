// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/orbital/internal/nasa"
	"github.com/tomtom215/orbital/internal/spacedevs"
	"github.com/tomtom215/orbital/internal/validation"
)

// dataFlags are the query flags of the data commands. Each command
// registers only the ones it reads.
type dataFlags struct {
	page      int
	limit     int
	search    string
	status    string
	camera    string
	earthDate string
	sol       int
	date      string
}

// listOutput is printed by the list commands.
type listOutput struct {
	Results    []json.RawMessage    `json:"results"`
	Count      int                  `json:"count"`
	Statuses   []string             `json:"statuses,omitempty"`
	Pagination spacedevs.Pagination `json:"pagination"`
}

func newDataCmds(opts *options) []*cobra.Command {
	return []*cobra.Command{
		dataCmd(opts, "apod", "Astronomy Picture of the Day", cobra.NoArgs, withDate, runAPOD),
		dataCmd(opts, "astronauts", "List astronauts", cobra.NoArgs, withStatusPaging, runAstronauts),
		dataCmd(opts, "astronaut ID", "Show one astronaut", cobra.ExactArgs(1), nil, runAstronaut),
		dataCmd(opts, "missions", "List launches", cobra.NoArgs, withSearchPaging, runMissions),
		dataCmd(opts, "mission ID", "Show one launch by UUID", cobra.ExactArgs(1), nil, runMission),
		dataCmd(opts, "rockets", "List launcher configurations", cobra.NoArgs, withSearchPaging, runRockets),
		dataCmd(opts, "rocket ID", "Show one launcher configuration", cobra.ExactArgs(1), nil, runRocket),
		dataCmd(opts, "stations", "List space stations", cobra.NoArgs, withStatusPaging, runStations),
		dataCmd(opts, "station ID", "Show one space station", cobra.ExactArgs(1), nil, runStation),
		dataCmd(opts, "rovers", "Show the Curiosity rover manifest", cobra.NoArgs, nil, runRovers),
		dataCmd(opts, "photos", "List Curiosity photos (latest without --sol or --earth-date)", cobra.NoArgs, withPhotoQuery, runPhotos),
		dataCmd(opts, "cameras", "List Curiosity cameras", cobra.NoArgs, nil, runCameras),
	}
}

// dataRun fetches one payload. cmd is passed so runs can check which flags
// were set.
type dataRun func(ctx context.Context, cmd *cobra.Command, c *clients, f *dataFlags, args []string) (interface{}, error)

func dataCmd(opts *options, use, short string, args cobra.PositionalArgs,
	register func(*cobra.Command, *dataFlags), run dataRun) *cobra.Command {
	f := &dataFlags{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClients(opts.cfg, userAgent(opts.version))
			payload, err := run(cmd.Context(), cmd, c, f, args)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), payload)
		},
	}
	if register != nil {
		register(cmd, f)
	}
	return cmd
}

func withDate(cmd *cobra.Command, f *dataFlags) {
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default: today)")
}

func withStatusPaging(cmd *cobra.Command, f *dataFlags) {
	cmd.Flags().IntVar(&f.page, "page", 1, "page number")
	cmd.Flags().IntVar(&f.limit, "limit", spacedevs.DefaultPageSize, "results per page (max 100)")
	cmd.Flags().StringVar(&f.status, "status", spacedevs.StatusAll, "keep only this status name")
}

func withSearchPaging(cmd *cobra.Command, f *dataFlags) {
	cmd.Flags().IntVar(&f.page, "page", 1, "page number")
	cmd.Flags().StringVar(&f.search, "search", "", "search term")
}

func withPhotoQuery(cmd *cobra.Command, f *dataFlags) {
	cmd.Flags().IntVar(&f.page, "page", 1, "page number")
	cmd.Flags().StringVar(&f.camera, "camera", "", "camera abbreviation, see 'orbital cameras'")
	cmd.Flags().StringVar(&f.earthDate, "earth-date", "", "Earth date as YYYY-MM-DD")
	cmd.Flags().IntVar(&f.sol, "sol", 0, "Martian sol (0 is the landing day)")
}

// validate runs the same request validation as the HTTP API.
func validate(req interface{}) error {
	if err := validation.ValidateStruct(req); err != nil {
		return err
	}
	return nil
}

func runAPOD(ctx context.Context, _ *cobra.Command, c *clients, f *dataFlags, _ []string) (interface{}, error) {
	if err := validate(&validation.APODRequest{Date: f.date}); err != nil {
		return nil, err
	}
	return c.nasa.APOD(ctx, f.date)
}

func runAstronauts(ctx context.Context, _ *cobra.Command, c *clients, f *dataFlags, _ []string) (interface{}, error) {
	return statusList(ctx, f, c.spaceDevs.Astronauts)
}

func runStations(ctx context.Context, _ *cobra.Command, c *clients, f *dataFlags, _ []string) (interface{}, error) {
	return statusList(ctx, f, c.spaceDevs.SpaceStations)
}

func statusList(ctx context.Context, f *dataFlags,
	load func(ctx context.Context, limit, offset int) (*spacedevs.Page, error)) (interface{}, error) {
	if err := validate(&validation.PagedListRequest{Page: f.page, Limit: f.limit, Status: f.status}); err != nil {
		return nil, err
	}
	page, err := load(ctx, f.limit, spacedevs.Offset(f.page, f.limit))
	if err != nil {
		return nil, err
	}
	results := spacedevs.FilterByStatus(page.Results, f.status)
	if results == nil {
		results = []json.RawMessage{}
	}
	return listOutput{
		Results:    results,
		Count:      page.Count,
		Statuses:   spacedevs.Statuses(page.Results),
		Pagination: spacedevs.NewPagination(page.Count, f.page, f.limit),
	}, nil
}

func runMissions(ctx context.Context, _ *cobra.Command, c *clients, f *dataFlags, _ []string) (interface{}, error) {
	return searchList(ctx, f, spacedevs.MissionPageSize, c.spaceDevs.Missions)
}

func runRockets(ctx context.Context, _ *cobra.Command, c *clients, f *dataFlags, _ []string) (interface{}, error) {
	return searchList(ctx, f, spacedevs.RocketPageSize, c.spaceDevs.Rockets)
}

func searchList(ctx context.Context, f *dataFlags, pageSize int,
	load func(ctx context.Context, page int, search string) (*spacedevs.Page, error)) (interface{}, error) {
	search := strings.TrimSpace(f.search)
	if err := validate(&validation.SearchListRequest{Page: f.page, Search: search}); err != nil {
		return nil, err
	}
	page, err := load(ctx, f.page, search)
	if err != nil {
		return nil, err
	}
	results := page.Results
	if results == nil {
		results = []json.RawMessage{}
	}
	return listOutput{
		Results:    results,
		Count:      page.Count,
		Pagination: spacedevs.NewPagination(page.Count, f.page, pageSize),
	}, nil
}

func runAstronaut(ctx context.Context, _ *cobra.Command, c *clients, _ *dataFlags, args []string) (interface{}, error) {
	return c.spaceDevs.Astronaut(ctx, args[0])
}

func runRocket(ctx context.Context, _ *cobra.Command, c *clients, _ *dataFlags, args []string) (interface{}, error) {
	return c.spaceDevs.Rocket(ctx, args[0])
}

func runStation(ctx context.Context, _ *cobra.Command, c *clients, _ *dataFlags, args []string) (interface{}, error) {
	return c.spaceDevs.SpaceStation(ctx, args[0])
}

func runMission(ctx context.Context, _ *cobra.Command, c *clients, _ *dataFlags, args []string) (interface{}, error) {
	return c.spaceDevs.Mission(ctx, strings.ToLower(args[0]))
}

func runRovers(ctx context.Context, _ *cobra.Command, c *clients, _ *dataFlags, _ []string) (interface{}, error) {
	return c.nasa.Rovers(ctx)
}

func runPhotos(ctx context.Context, cmd *cobra.Command, c *clients, f *dataFlags, _ []string) (interface{}, error) {
	// --sol 0 is a real sol, so "unset" comes from the flag set
	var sol *int
	if cmd.Flags().Changed("sol") {
		sol = &f.sol
	}
	req := validation.PhotosRequest{Page: f.page, Camera: f.camera, EarthDate: f.earthDate, Sol: sol}
	if err := validate(&req); err != nil {
		return nil, err
	}
	return c.nasa.RoverPhotos(ctx, nasa.PhotoQuery{
		Page:      req.Page,
		Camera:    strings.ToUpper(req.Camera),
		EarthDate: req.EarthDate,
		Sol:       req.Sol,
	})
}

func runCameras(context.Context, *cobra.Command, *clients, *dataFlags, []string) (interface{}, error) {
	return nasa.Cameras(), nil
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

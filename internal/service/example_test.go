package service_test

import (
	"context"
	"fmt"
	"os"

	"github.com/jpl-au/docq/internal/config"
	"github.com/jpl-au/docq/internal/document"
	"github.com/jpl-au/docq/internal/service"
	"github.com/jpl-au/docq/query"
)

// tempService creates an in-memory service for examples.
func tempService() service.Service {
	svc, err := document.NewMemory(&config.Config{})
	if err != nil {
		panic(err)
	}
	return svc
}

func Example_query() {
	svc := tempService()
	defer svc.Close()
	ctx := context.Background()

	_, _ = svc.Put(ctx, "dune", query.Document{"title": "Dune", "year": 1965}, false)
	_, _ = svc.Put(ctx, "emma", query.Document{"title": "Emma", "year": 1815}, false)
	_, _ = svc.Put(ctx, "ulysses", query.Document{"title": "Ulysses", "year": 1922}, false)

	rows, err := svc.Query(ctx, `year: > 1900`, query.Options{
		SortOn:     []query.SortKey{{Field: "year", Direction: query.Descending}},
		SelectList: []string{"title"},
	})
	if err != nil {
		panic(err)
	}
	for _, r := range rows {
		fmt.Println(r.ID, r.Value["title"])
	}
	// Output:
	// dune Dune
	// ulysses Ulysses
}

func Example_parse() {
	svc := tempService()
	defer svc.Close()

	q, err := svc.Parse(`title:(Dune OR Emma) year:>1900`)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(q)
	// Output:
	// ( ( title: "Dune" OR title: "Emma" ) AND year: > "1900" )
}

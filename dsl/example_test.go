package dsl_test

import (
	"context"
	"fmt"
	"time"

	serde "github.com/opikgo/serde"
	g "github.com/opikgo/serde/dsl"
)

type meeting struct {
	StartDate time.Time              `json:"startDate"`
	Title     string                 `json:"title"`
	Room      serde.Optional[string] `json:"room"`
}

func ExampleObjectOf() {
	ctx := context.Background()

	var s serde.Schema[meeting] = g.ObjectOf(
		g.Property("start_date", func(m *meeting) *time.Time { return &m.StartDate }, g.Date()),
		g.Field(func(m *meeting) *string { return &m.Title }, g.String()),
		g.Field(func(m *meeting) *serde.Optional[string] { return &m.Room }, g.Optional(g.String())),
	).UnknownStrict().MustBuild()

	in := []byte(`{"start_date":"2024-01-15T11:30:00+01:00","title":"kickoff"}`)
	v, err := serde.Unmarshal(ctx, s, in)
	fmt.Println("decoded:", v.StartDate.UTC().Format(time.RFC3339), v.Title, v.Room.IsSet(), err)

	out, _ := serde.Marshal(ctx, s, v)
	fmt.Println("encoded:", string(out))

	_, err = serde.Unmarshal(ctx, s, []byte(`{"start_date":"2024-01-15T10:30:00Z","title":"kickoff","extra":1}`))
	iss, _ := serde.AsIssues(err)
	fmt.Println("rejected:", iss[0].Pointer(), iss[0].Code)
	// Output:
	// decoded: 2024-01-15T10:30:00Z kickoff false <nil>
	// encoded: {"start_date":"2024-01-15T10:30:00Z","title":"kickoff"}
	// rejected: /extra unknown_key
}

type score interface{ isScore() }

type numericScore struct {
	Value float64 `json:"value"`
}

type categoricalScore struct {
	Category string `json:"category"`
}

func (numericScore) isScore()     {}
func (categoricalScore) isScore() {}

func ExampleUnionOf() {
	ctx := context.Background()

	numeric := g.ObjectOf(g.Field(func(n *numericScore) *float64 { return &n.Value }, g.Float())).MustBuild()
	categorical := g.ObjectOf(g.Field(func(c *categoricalScore) *string { return &c.Category }, g.String())).MustBuild()
	var s serde.Schema[score] = g.UnionOf[score]("kind",
		g.Variant[score]("numeric", numeric),
		g.Variant[score]("categorical", categorical),
	).MustBuild()

	v, err := serde.Unmarshal(ctx, s, []byte(`{"value":0.5,"kind":"numeric"}`))
	fmt.Printf("decoded: %#v %v\n", v, err)

	out, _ := serde.Marshal(ctx, s, score(categoricalScore{Category: "good"}))
	fmt.Println("encoded:", string(out))

	_, err = serde.Unmarshal(ctx, s, []byte(`{"kind":"boolean"}`))
	iss, _ := serde.AsIssues(err)
	fmt.Println("rejected:", iss[0].Pointer(), iss[0].Code)
	// Output:
	// decoded: dsl_test.numericScore{Value:0.5} <nil>
	// encoded: {"kind":"categorical","category":"good"}
	// rejected: /kind discriminator_unknown
}

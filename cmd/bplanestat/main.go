// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

/*
bplanestat loads a Plane with randomly generated rectangles, runs one
TOUCH, one OVERLAP and one ALL query against it (no EQUAL query), and
reports the resulting bin-tree
shape and per-query timing. It exists to give a human a quick feel for
how a given population and area size actually bin, without writing a
throwaway Go program by hand each time.
*/

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"

	"github.com/grailbio/bplane"
	"github.com/grailbio/bplane/georect"
)

var (
	n        = flag.Int("n", 100000, "Number of random rectangles to index")
	seed     = flag.Int64("seed", 1, "Random seed")
	area     = flag.Int("area", 1000000, "Side length of the square region rectangles are scattered over")
	maxSpan  = flag.Int("max-span", 100, "Upper bound on a rectangle's width and height")
	queryLen = flag.Int("query-span", 1000, "Side length of the TOUCH/OVERLAP query rectangle")
)

type rect struct {
	bplane.Header
}

func randRect(rng *rand.Rand, areaSide, maxSpan int) georect.Rect {
	xbot := georect.PosType(rng.Intn(areaSide))
	ybot := georect.PosType(rng.Intn(areaSide))
	return georect.Rect{
		XBot: xbot,
		YBot: ybot,
		XTop: xbot + 1 + georect.PosType(rng.Intn(maxSpan)),
		YTop: ybot + 1 + georect.PosType(rng.Intn(maxSpan)),
	}
}

func timeQuery(p *bplane.Plane, query georect.Rect, mode bplane.MatchMode, label string) {
	start := time.Now()
	e := bplane.InitEnum(p, query, mode, label)
	count := 0
	for {
		if _, ok := e.Next(); !ok {
			break
		}
		count++
	}
	e.Term()
	fmt.Printf("%-8s %8d matches in %v\n", label, count, time.Since(start))
}

func main() {
	flag.Parse()
	shutdown := grail.Init()
	defer shutdown()

	p := bplane.New()
	rng := rand.New(rand.NewSource(*seed))

	build := time.Now()
	for i := 0; i < *n; i++ {
		r := &rect{}
		r.Rect = randRect(rng, *area, *maxSpan)
		p.Add(r)
	}
	log.Printf("added %d rectangles in %v", *n, time.Since(build))

	bbox := p.BBox()
	fmt.Printf("bbox: %+v\n", bbox)

	cx := georect.PosType(*area) / 2
	query := georect.Rect{
		XBot: cx - georect.PosType(*queryLen)/2, YBot: cx - georect.PosType(*queryLen)/2,
		XTop: cx + georect.PosType(*queryLen)/2, YTop: cx + georect.PosType(*queryLen)/2,
	}
	timeQuery(p, query, bplane.Touch, "TOUCH")
	timeQuery(p, query, bplane.Overlap, "OVERLAP")
	timeQuery(p, query, bplane.All, "ALL")

	stat := p.Stat()
	fmt.Printf("%+v\n", stat)
}

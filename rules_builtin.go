package goshogi

// Built-in rule ids.
const (
	RuleHirate   = 1
	RuleMinimal  = 2
	RuleDobutsu  = 3
	RuleYonin    = 4
	RuleLion     = 5
	RuleOthello  = 6
	RulePassable = 7
	RuleKakuochi = 8
)

var (
	orthogonal = [][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
	diagonal   = [][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	kinVectors = [][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {0, 1}}
	ginVectors = [][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 1}, {1, 1}}
	allAround  = append(append([][2]int{}, orthogonal...), diagonal...)
)

func steps(t MoveType, rng int, vectors ...[2]int) []Movement {
	out := make([]Movement, 0, len(vectors))
	for _, v := range vectors {
		out = append(out, Movement{DX: v[0], DY: v[1], Range: rng, Type: t})
	}
	return out
}

func step(vectors ...[2]int) []Movement  { return steps(MoveStep, 1, vectors...) }
func slide(vectors ...[2]int) []Movement { return steps(MoveStep, 0, vectors...) }

func join(lists ...[]Movement) []Movement {
	var out []Movement
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func twoSeats() []PlayerRule {
	return []PlayerRule{
		{Name: "先手", Mark: "▲", Facing: FacingUp},
		{Name: "後手", Mark: "△", Facing: FacingDown},
	}
}

func shogiPieces() map[Species]PieceRule {
	kin := step(kinVectors...)
	return map[Species]PieceRule{
		"fu":      {Name: "歩兵", ShortName: "歩", Moves: step([2]int{0, -1})},
		"kyo":     {Name: "香車", ShortName: "香", Moves: slide([2]int{0, -1})},
		"kei":     {Name: "桂馬", ShortName: "桂", Moves: steps(MoveJump, 1, [2]int{-1, -2}, [2]int{1, -2})},
		"gin":     {Name: "銀将", ShortName: "銀", Moves: step(ginVectors...)},
		"kin":     {Name: "金将", ShortName: "金", Moves: kin},
		"kaku":    {Name: "角行", ShortName: "角", Moves: slide(diagonal...)},
		"hi":      {Name: "飛車", ShortName: "飛", Moves: slide(orthogonal...)},
		"ou":      {Name: "玉将", ShortName: "玉", Moves: step(allAround...), Royal: true},
		"to":      {Name: "と金", ShortName: "と", Moves: kin},
		"narikyo": {Name: "成香", ShortName: "成香", Moves: kin},
		"narikei": {Name: "成桂", ShortName: "成桂", Moves: kin},
		"narigin": {Name: "成銀", ShortName: "成銀", Moves: kin},
		"uma":     {Name: "竜馬", ShortName: "馬", Moves: join(slide(diagonal...), step(orthogonal...))},
		"ryu":     {Name: "竜王", ShortName: "龍", Moves: join(slide(orthogonal...), step(diagonal...))},
	}
}

func shogiNari() map[Species]Species {
	return map[Species]Species{
		"fu": "to", "kyo": "narikyo", "kei": "narikei", "gin": "narigin", "kaku": "uma", "hi": "ryu",
	}
}

// hirateBan is the standard opening position. Seat 0 sits on ranks 7-9.
func hirateBan() []Placement {
	back := []Species{"kyo", "kei", "gin", "kin", "ou", "kin", "gin", "kei", "kyo"}
	var out []Placement
	for x := 1; x <= 9; x++ {
		out = append(out,
			Placement{X: x, Y: 9, Direction: 0, Species: back[x-1]},
			Placement{X: x, Y: 7, Direction: 0, Species: "fu"},
			Placement{X: x, Y: 1, Direction: 1, Species: back[x-1]},
			Placement{X: x, Y: 3, Direction: 1, Species: "fu"},
		)
	}
	return append(out,
		Placement{X: 8, Y: 8, Direction: 0, Species: "kaku"},
		Placement{X: 2, Y: 8, Direction: 0, Species: "hi"},
		Placement{X: 2, Y: 2, Direction: 1, Species: "kaku"},
		Placement{X: 8, Y: 2, Direction: 1, Species: "hi"},
	)
}

func hirateStrategy() map[Role]StrategyConfig {
	return map[Role]StrategyConfig{
		RolePromotion: {Name: "Normal", Zone: 3},
		RoleNifu:      {Name: "Normal", Species: []Species{"fu"}},
		RoleJudge:     {Name: "Checkmate", Species: []Species{"fu"}},
	}
}

// BuiltinRules returns a fresh copy of the rules shipped with the engine.
func BuiltinRules() RuleBook {
	book := RuleBook{}
	for _, r := range []*Rule{
		hirateRule(), minimalRule(), dobutsuRule(), yoninRule(), lionRule(), othelloRule(), passableRule(), kakuochiRule(),
	} {
		book[r.ID] = r
	}
	return book
}

func hirateRule() *Rule {
	return &Rule{
		ID:       RuleHirate,
		Name:     "本将棋",
		Size:     [2]int{9, 9},
		Players:  twoSeats(),
		Pieces:   shogiPieces(),
		Nari:     shogiNari(),
		Init:     InitialPosition{Ban: hirateBan()},
		Strategy: hirateStrategy(),
	}
}

// kakuochiRule is hirate with the bishop of seat 1 removed. The handicap
// giver moves first.
func kakuochiRule() *Rule {
	r := hirateRule()
	r.ID, r.Name, r.Komaochi = RuleKakuochi, "角落ち", true
	var ban []Placement
	for _, p := range r.Init.Ban {
		if p.Direction == 1 && p.Species == "kaku" {
			continue
		}
		ban = append(ban, p)
	}
	r.Init.Ban = ban
	return r
}

// minimalRule has one pawn per seat on a single file, face to face.
func minimalRule() *Rule {
	return &Rule{
		ID:      RuleMinimal,
		Name:    "歩対歩",
		Size:    [2]int{1, 2},
		Players: twoSeats(),
		Pieces: map[Species]PieceRule{
			"fu": {Name: "歩兵", ShortName: "歩", Moves: step([2]int{0, -1})},
		},
		Init: InitialPosition{Ban: []Placement{
			{X: 1, Y: 2, Direction: 0, Species: "fu"},
			{X: 1, Y: 1, Direction: 1, Species: "fu"},
		}},
		Strategy: map[Role]StrategyConfig{
			RolePromotion: {Name: "None"},
			RoleNifu:      {Name: "None"},
			RoleJudge:     {Name: "None"},
		},
	}
}

func dobutsuPieces() map[Species]PieceRule {
	return map[Species]PieceRule{
		"lion":     {Name: "ライオン", ShortName: "ラ", Moves: step(allAround...), Royal: true},
		"kirin":    {Name: "キリン", ShortName: "キ", Moves: step(orthogonal...)},
		"zou":      {Name: "ゾウ", ShortName: "ゾ", Moves: step(diagonal...)},
		"hiyoko":   {Name: "ひよこ", ShortName: "ひ", Moves: step([2]int{0, -1})},
		"niwatori": {Name: "にわとり", ShortName: "に", Moves: step(kinVectors...)},
	}
}

// dobutsuRule is a 3x4 game won by taking the opposing lion.
func dobutsuRule() *Rule {
	return &Rule{
		ID:      RuleDobutsu,
		Name:    "どうぶつしょうぎ",
		Size:    [2]int{3, 4},
		Players: twoSeats(),
		Pieces:  dobutsuPieces(),
		Nari:    map[Species]Species{"hiyoko": "niwatori"},
		Init: InitialPosition{Ban: []Placement{
			{X: 1, Y: 4, Direction: 0, Species: "kirin"},
			{X: 2, Y: 4, Direction: 0, Species: "lion"},
			{X: 3, Y: 4, Direction: 0, Species: "zou"},
			{X: 2, Y: 3, Direction: 0, Species: "hiyoko"},
			{X: 3, Y: 1, Direction: 1, Species: "kirin"},
			{X: 2, Y: 1, Direction: 1, Species: "lion"},
			{X: 1, Y: 1, Direction: 1, Species: "zou"},
			{X: 2, Y: 2, Direction: 1, Species: "hiyoko"},
		}},
		Strategy: map[Role]StrategyConfig{
			RolePromotion: {Name: "Normal", Zone: 1},
			RoleNifu:      {Name: "None"},
			RoleJudge:     {Name: "Capture"},
		},
	}
}

// passableRule is dobutsu shogi where a seat may pass.
func passableRule() *Rule {
	r := dobutsuRule()
	r.ID, r.Name = RulePassable, "パスありどうぶつしょうぎ"
	r.Strategy[RoleTebanRotation] = StrategyConfig{Name: "Passable"}
	return r
}

// yoninRule seats four players on the four edges of a 9x9 board.
func yoninRule() *Rule {
	r := &Rule{
		ID:   RuleYonin,
		Name: "四人将棋",
		Size: [2]int{9, 9},
		Players: []PlayerRule{
			{Name: "南", Mark: "▲", Facing: FacingUp},
			{Name: "西", Mark: "▶", Facing: FacingRight},
			{Name: "北", Mark: "▼", Facing: FacingDown},
			{Name: "東", Mark: "◀", Facing: FacingLeft},
		},
		Pieces: shogiPieces(),
		Strategy: map[Role]StrategyConfig{
			RolePromotion: {Name: "None"},
			RoleNifu:      {Name: "None"},
			RoleJudge:     {Name: "Capture"},
		},
	}
	// back rank centre, flanked by gold generals, with a pawn in front
	type edge struct {
		d                  Direction
		ou, kinA, kinB, fu XY
	}
	for _, e := range []edge{
		{0, NewXY(5, 9), NewXY(4, 9), NewXY(6, 9), NewXY(5, 8)},
		{1, NewXY(1, 5), NewXY(1, 4), NewXY(1, 6), NewXY(2, 5)},
		{2, NewXY(5, 1), NewXY(4, 1), NewXY(6, 1), NewXY(5, 2)},
		{3, NewXY(9, 5), NewXY(9, 4), NewXY(9, 6), NewXY(8, 5)},
	} {
		r.Init.Ban = append(r.Init.Ban,
			Placement{X: e.ou.X, Y: e.ou.Y, Direction: e.d, Species: "ou"},
			Placement{X: e.kinA.X, Y: e.kinA.Y, Direction: e.d, Species: "kin"},
			Placement{X: e.kinB.X, Y: e.kinB.Y, Direction: e.d, Species: "kin"},
			Placement{X: e.fu.X, Y: e.fu.Y, Direction: e.d, Species: "fu"},
		)
	}
	return r
}

// lionRule features a piece that moves twice per turn, one step at a time,
// or leaps to any cell two steps away.
func lionRule() *Rule {
	var twoAway [][2]int
	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			if abs(dx) == 2 || abs(dy) == 2 {
				twoAway = append(twoAway, [2]int{dx, dy})
			}
		}
	}
	pieces := map[Species]PieceRule{
		"shishi": {Name: "獅子", ShortName: "獅", Moves: join(steps(MovePartial, 1, allAround...), steps(MoveJump, 1, twoAway...))},
		"ou":     {Name: "玉将", ShortName: "玉", Moves: step(allAround...), Royal: true},
		"kin":    {Name: "金将", ShortName: "金", Moves: step(kinVectors...)},
		"fu":     {Name: "歩兵", ShortName: "歩", Moves: step([2]int{0, -1})},
	}
	return &Rule{
		ID:      RuleLion,
		Name:    "獅子将棋",
		Size:    [2]int{5, 5},
		Players: twoSeats(),
		Pieces:  pieces,
		Init: InitialPosition{Ban: []Placement{
			{X: 3, Y: 5, Direction: 0, Species: "ou"},
			{X: 2, Y: 5, Direction: 0, Species: "shishi"},
			{X: 4, Y: 5, Direction: 0, Species: "kin"},
			{X: 3, Y: 4, Direction: 0, Species: "fu"},
			{X: 3, Y: 1, Direction: 1, Species: "ou"},
			{X: 4, Y: 1, Direction: 1, Species: "shishi"},
			{X: 2, Y: 1, Direction: 1, Species: "kin"},
			{X: 3, Y: 2, Direction: 1, Species: "fu"},
		}},
		Strategy: map[Role]StrategyConfig{
			RoleCapture:       {Name: "Discard"},
			RoleMochigomaIO:   {Name: "Disabled"},
			RolePromotion:     {Name: "None"},
			RoleNifu:          {Name: "None"},
			RoleJudge:         {Name: "Capture"},
			RoleTebanRotation: {Name: "MultiStep"},
		},
	}
}

// othelloRule turns over opposing pieces enclosed by a move or drop.
func othelloRule() *Rule {
	pieces := shogiPieces()
	return &Rule{
		ID:      RuleOthello,
		Name:    "オセロ将棋",
		Size:    [2]int{6, 6},
		Players: twoSeats(),
		Pieces: map[Species]PieceRule{
			"fu":  pieces["fu"],
			"to":  pieces["to"],
			"kin": pieces["kin"],
			"ou":  pieces["ou"],
		},
		Nari: map[Species]Species{"fu": "to"},
		Init: InitialPosition{Ban: []Placement{
			{X: 3, Y: 6, Direction: 0, Species: "ou"},
			{X: 2, Y: 6, Direction: 0, Species: "kin"},
			{X: 4, Y: 6, Direction: 0, Species: "kin"},
			{X: 2, Y: 4, Direction: 0, Species: "fu"},
			{X: 3, Y: 4, Direction: 0, Species: "fu"},
			{X: 4, Y: 4, Direction: 0, Species: "fu"},
			{X: 5, Y: 4, Direction: 0, Species: "fu"},
			{X: 4, Y: 1, Direction: 1, Species: "ou"},
			{X: 3, Y: 1, Direction: 1, Species: "kin"},
			{X: 5, Y: 1, Direction: 1, Species: "kin"},
			{X: 2, Y: 3, Direction: 1, Species: "fu"},
			{X: 3, Y: 3, Direction: 1, Species: "fu"},
			{X: 4, Y: 3, Direction: 1, Species: "fu"},
			{X: 5, Y: 3, Direction: 1, Species: "fu"},
		}},
		Strategy: map[Role]StrategyConfig{
			RoleMoveEffect: {Name: "Othello"},
			RolePromotion:  {Name: "Normal", Zone: 2},
			RoleNifu:       {Name: "None"},
			RoleJudge:      {Name: "Capture"},
		},
	}
}

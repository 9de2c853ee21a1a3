package maze

import "github.com/vovakirdan/maze-chase/internal/core"

// classicRows is the 31x31 reference maze.
// Walls use box-drawing hints (see wallGlyphs); '.' is a dot, 'P' a power
// marker, 'h' the pursuer pen and 'e' the gap above it.
var classicRows = []string{
	"F-------------v-v-------------7",
	"|.............| |.............|",
	"|.F---7.F---7.| |.F---7.F---7.|",
	"|.|   |.L---J.L-J.L---J.|   |.|",
	"|.|   |.................|   |.|",
	"|.|   |.F---7.F-7.F---7.|   |.|",
	"|PL---J.L---J.L-J.L---J.L---JP|",
	"|.............................|",
	"|.F---7.F7.F-------7.F7.F---7.|",
	"|.L---J.||.L--7 F--J.||.L---J.|",
	"|.......||....| |....||.......|",
	"L-----7.|L--7 | | F--J|.F-----J",
	"      |.|F--J L-J L--7|.|      ",
	"      |.||           ||.|      ",
	"------J.LJ F--eee--7 LJ.L------",
	"       .   |hhhhhhh|   .       ",
	"------7.F7 L-------J F7.F------",
	"      |.||           ||.|      ",
	"      |.|| F-------7 ||.|      ",
	"F-----J.LJ L--7 F--J LJ.L-----7",
	"|.............| |.............|",
	"|.F---7.F---7.| |.F---7.F---7.|",
	"|.L-7 |.L---J.L-J.L---J.| F-J.|",
	"|P..| |........ ........| |..P|",
	">-7.| |.F7.F-------7.F7.| |.F-<",
	">-J.L-J.||.L--7 F--J.||.L-J.L-<",
	"|.......||....| |....||.......|",
	"|.F-----JL--7.| |.F--JL-----7.|",
	"|.L---------J.L-J.L---------J.|",
	"|.............................|",
	"L-----------------------------J",
}

// Classic returns the reference level: a 31x31 maze with the player starting
// at (15,23), pursuers at (12,15), (14,15), (16,15), (18,15) and a single
// tunnel on row 15.
func Classic() *Layout {
	l := MustParseLayout(classicRows)
	l.PlayerStart = core.Pt(15, 23)
	l.PlayerFacing = core.DirRight
	for i := range l.GhostStarts {
		l.GhostStarts[i] = core.Pt(12+2*i, 15)
	}
	l.GhostFacing = core.DirRight
	l.TunnelLeft = core.Pt(0, 15)
	l.TunnelRight = core.Pt(l.width-1, 15)
	return l
}

package board

// StandardLayout is the usual 15x15 bonus layout. Each string is one row:
// = is a triple word, - a double word, " a triple letter and ' a double
// letter. The centre square counts as a double word.
var StandardLayout = []string{
	`=  '   =   '  =`,
	` -   "   "   - `,
	`  -   ' '   -  `,
	`'  -   '   -  '`,
	`    -     -    `,
	` "   "   "   " `,
	`  '   ' '   '  `,
	`=  '   -   '  =`,
	`  '   ' '   '  `,
	` "   "   "   " `,
	`    -     -    `,
	`'  -   '   -  '`,
	`  -   ' '   -  `,
	` -   "   "   - `,
	`=  '   =   '  =`,
}

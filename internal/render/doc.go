// Package render draws a computed quasi-potential as an image or an HTML
// chart.
//
// [PNG] writes a heat map with level-set contours using gonum/plot; the file
// extension selects the format (.png, .svg, .pdf). [HTML] writes an
// interactive go-echarts scatter colored by value. Points holding the
// unreached sentinel are left blank in both.
package render

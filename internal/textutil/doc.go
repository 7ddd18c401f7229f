// Package textutil turns sequence names into safe output file names.
package textutil

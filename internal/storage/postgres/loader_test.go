package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildInsertSQL(t *testing.T) {
	sql := buildInsertSQL("authors", []string{"name", "joined_date", "author_category"}, 2)
	require.Equal(t,
		"INSERT INTO authors (name,joined_date,author_category) VALUES ($1,$2,$3),($4,$5,$6)",
		sql)
}

func TestBuildInsertSQL_PlaceholderCount(t *testing.T) {
	cols := []string{"post_id", "type", "user_id", "engaged_timestamp"}
	sql := buildInsertSQL("engagements", cols, 500)

	require.Equal(t, 500*len(cols), strings.Count(sql, "$"))
	require.True(t, strings.HasSuffix(sql, "($1997,$1998,$1999,$2000)"))
}

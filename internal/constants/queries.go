package constants

const (
	// ReadingStatsByGroundCheck counts stored rows and non-null readings per header.
	// Uses ? placeholders; callers Rebind for the active driver.
	ReadingStatsByGroundCheck = `
	SELECT
		g.id AS ground_check_id,
		COUNT(r.id) AS row_count,
		COALESCE(SUM(
			(CASE WHEN r.tx1_ddm_percent IS NULL THEN 0 ELSE 1 END) +
			(CASE WHEN r.tx1_ddm_ua IS NULL THEN 0 ELSE 1 END) +
			(CASE WHEN r.tx1_sum IS NULL THEN 0 ELSE 1 END) +
			(CASE WHEN r.tx1_mod90 IS NULL THEN 0 ELSE 1 END) +
			(CASE WHEN r.tx1_mod150 IS NULL THEN 0 ELSE 1 END) +
			(CASE WHEN r.tx1_rf IS NULL THEN 0 ELSE 1 END) +
			(CASE WHEN r.tx2_ddm_percent IS NULL THEN 0 ELSE 1 END) +
			(CASE WHEN r.tx2_ddm_ua IS NULL THEN 0 ELSE 1 END) +
			(CASE WHEN r.tx2_sum IS NULL THEN 0 ELSE 1 END) +
			(CASE WHEN r.tx2_mod90 IS NULL THEN 0 ELSE 1 END) +
			(CASE WHEN r.tx2_mod150 IS NULL THEN 0 ELSE 1 END) +
			(CASE WHEN r.tx2_rf IS NULL THEN 0 ELSE 1 END)
		), 0) AS filled_readings
	FROM ground_checks g
	LEFT JOIN ground_check_rows r ON r.ground_check_id = g.id
	GROUP BY g.id
	ORDER BY g.id
	`

	PingQuery = `SELECT 1`
)

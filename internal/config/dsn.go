package config

import (
	"net"
	"strconv"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
)

// DSNValue returns the connection string for the configured driver.
// An explicit dsn always wins; otherwise it is assembled from the parts.
func (c DatabaseRuntimeConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}
	if normalizeDriver(c.Driver) == DriverSQLite {
		if p := strings.TrimSpace(c.Path); p != "" {
			return p
		}
		return defaultSQLitePath
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultDBHost
	}
	port := c.Port
	if port == 0 {
		port = defaultDBPort
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = defaultDBName
	}
	charset := strings.TrimSpace(c.Charset)
	if charset == "" {
		charset = defaultDBCharset
	}

	mc := mysqldriver.NewConfig()
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	mc.User = strings.TrimSpace(c.User)
	mc.Passwd = c.Password
	mc.DBName = name
	mc.ParseTime = c.ParseTime
	if loc, err := time.LoadLocation(strings.TrimSpace(c.Loc)); err == nil && strings.TrimSpace(c.Loc) != "" {
		mc.Loc = loc
	}
	params := map[string]string{"charset": charset}
	for key, value := range c.Params {
		k := strings.TrimSpace(key)
		v := strings.TrimSpace(value)
		if k != "" && v != "" {
			params[k] = v
		}
	}
	mc.Params = params
	return mc.FormatDSN()
}

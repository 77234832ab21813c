// Package rito scrapes league data from the lolesports REST API.
package rito

package hos

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/OpenFreightTools/haulcast/foundation/httpclient"
)

//RemoteEstimator asks an external routing service for leg distances. The
//service must answer GET {base}/route with the same JSON shape the reference
//estimator produces: two legs, totals, and waypoints ordered
//[origin, pickup, dropoff].
type RemoteEstimator struct {
	BaseURL string
	Timeout time.Duration
}

//NewRemoteEstimator builds a RemoteEstimator for the routing service at baseURL
func NewRemoteEstimator(baseURL string) *RemoteEstimator {
	return &RemoteEstimator{BaseURL: baseURL, Timeout: httpclient.DefaultTimeout}
}

//EstimateRoute implements RouteEstimator
func (e *RemoteEstimator) EstimateRoute(origin, pickup, dropoff Location) (*Route, error) {
	q := make(url.Values)
	setLocationParams(q, "origin", origin)
	setLocationParams(q, "pickup", pickup)
	setLocationParams(q, "dropoff", dropoff)
	requestURL := strings.TrimSuffix(e.BaseURL, "/") + "/route?" + q.Encode()

	var route Route
	if err := httpclient.GetJSON(requestURL, e.Timeout, &route); err != nil {
		return nil, fmt.Errorf("fetching route from routing service: %w", err)
	}
	if len(route.Legs) != 2 || len(route.Waypoints) != 3 {
		return nil, fmt.Errorf("routing service returned %d legs and %d waypoints, want 2 and 3",
			len(route.Legs), len(route.Waypoints))
	}
	return &route, nil
}

func setLocationParams(q url.Values, prefix string, loc Location) {
	q.Set(prefix+"_label", loc.Label)
	q.Set(prefix+"_lat", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	q.Set(prefix+"_lng", strconv.FormatFloat(loc.Lng, 'f', -1, 64))
}
